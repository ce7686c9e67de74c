package templates

import "testing"

func TestMerge_OverrideWins(t *testing.T) {
	defaults := DefaultContext()
	got := Merge(defaults, Context{"hostname": "other_host", "extra": 1})

	if got["hostname"] != "other_host" {
		t.Errorf("hostname = %v, want other_host", got["hostname"])
	}
	if got["extra"] != 1 {
		t.Errorf("extra = %v, want 1", got["extra"])
	}
	if got["SSID"] != "the_ssid" {
		t.Errorf("SSID = %v, want default the_ssid", got["SSID"])
	}
	if defaults["hostname"] != "the_hostname" {
		t.Error("Merge must not modify the defaults")
	}
}

func TestMerge_IsShallow(t *testing.T) {
	got := Merge(DefaultContext(), Context{
		"header": Context{"hostname": "h2"},
	})

	header, ok := got["header"].(Context)
	if !ok {
		t.Fatalf("header has type %T", got["header"])
	}
	if header["hostname"] != "h2" {
		t.Errorf("header.hostname = %v, want h2", header["hostname"])
	}
	if _, ok := header["git_hash"]; ok {
		t.Error("nested default keys must not survive a top-level override")
	}
}

func TestMerge_NilInputs(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Errorf("Merge(nil, nil) = %v, want empty", got)
	}
	if got := Merge(DefaultContext(), nil); got["showControl"] != true {
		t.Errorf("showControl = %v, want true", got["showControl"])
	}
}

func TestDefaultContext_Fresh(t *testing.T) {
	a := DefaultContext()
	a["hostname"] = "changed"
	if DefaultContext()["hostname"] != "the_hostname" {
		t.Error("DefaultContext must return a new map on each call")
	}
}
