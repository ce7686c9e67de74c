package routes

import "github.com/floatplane/mitsuqtt-preview/internal/templates"

// Stylesheet is the statics file served at /css.
const Stylesheet = "mvp.css"

type ctx = templates.Context

// Default returns the preview route table with its sample data.
func Default() *Table {
	return NewTable(Pages())
}

// Pages lists every preview route. Context builders return new literals on
// each call so concurrent renders never share maps.
func Pages() []Route {
	return []Route{
		{Path: "/css", File: Stylesheet},

		{Path: "/captive/", View: "captive/index", Context: func() ctx {
			return ctx{"hostname": "the_hostname"}
		}},
		{Path: "/captive/reboot", View: "captive/reboot"},
		{Path: "/captive/save", View: "captive/save", Context: func() ctx {
			return ctx{"access_point": "the_ssid", "hostname": "the_hostname"}
		}},

		{Path: "/mqtt", View: "mqtt/index", Context: mqttContext},

		{Path: "/", View: "index"},
		{Path: "/control", View: "control", Context: controlContext},
		{Path: "/others", View: "others", Context: othersContext},
		{Path: "/reboot", View: "reboot", Context: func() ctx {
			return ctx{"saving": true}
		}},
		{Path: "/reset", View: "reset", Context: func() ctx {
			return ctx{"SSID": "the_ssid"}
		}},
		{Path: "/setup", View: "setup"},
		{Path: "/status", View: "status", Context: statusContext},

		// Same view twice so both unit configurations can be compared.
		{Path: "/unit", View: "unit", Context: func() ctx {
			return ctx{
				"min_temp":           "16",
				"max_temp":           "30",
				"temp_step":          "0.5",
				"temp_unit_c":        true,
				"mode_selection_all": true,
				"login_password":     "",
			}
		}},
		{Path: "/unit_alt", View: "unit", Context: func() ctx {
			return ctx{
				"min_temp":           "55",
				"max_temp":           "72",
				"temp_step":          "1",
				"temp_unit_c":        false,
				"mode_selection_all": false,
				"login_password":     "abc123",
			}
		}},

		{Path: "/upgrade", View: "upgrade"},
		{Path: "/upload", View: "upload"},
		{Path: "/wifi", View: "wifi", Context: func() ctx {
			return ctx{"access_point": "the_ssid", "hostname": "the_hostname", "password": "abc123"}
		}},
	}
}

func mqttContext() ctx {
	return ctx{
		"hostname": "the_hostname",
		"friendlyName": ctx{
			"label": "Friendly name",
			"value": "the_friendly_name",
			"param": "fn",
		},
		"server": ctx{
			"label": "MQTT server",
			"value": "mqtt.example.com",
			"param": "mh",
		},
		"port": ctx{
			"value": "1883",
		},
		"password": ctx{
			"value": "abc123",
		},
		"user": ctx{
			"value":       "the_username",
			"label":       "Username",
			"param":       "mu",
			"placeholder": "mqtt_user",
		},
		"topic": ctx{
			"value":       "the_topic",
			"label":       "Topic",
			"param":       "mt",
			"placeholder": "topic",
		},
	}
}

func controlContext() ctx {
	return ctx{
		"min_temp":        "16",
		"current_temp":    "20.1",
		"target_temp":     "22",
		"max_temp":        "30",
		"temp_step":       "0.5",
		"temp_unit":       "C",
		"supportHeatMode": false,
		"power":           true,
		"mode":            ctx{"cool": true},
		"fan":             ctx{"3": true},
		"vane":            ctx{"auto": true},
		"widevane":        ctx{"1": true},
	}
}

func othersContext() ctx {
	return ctx{
		"topic":             "the_topic",
		"dumpPacketsToMqtt": true,
		"logToMqtt":         true,
		"toggles": []ctx{
			{"title": "Safe mode", "name": "SafeMode", "value": true},
			{"title": "Optimistic updates", "name": "OptimisticUpdates", "value": true},
			{"title": "MQTT topic debug logs", "name": "DebugLogs", "value": true},
			{"title": "MQTT topic debug packets", "name": "DebugPckts", "value": true},
		},
	}
}

func statusContext() ctx {
	return ctx{
		"uptime": ctx{
			"years":   1,
			"days":    2,
			"hours":   3,
			"minutes": 4,
			"seconds": "5.060",
		},
		"hvac_connected":       true,
		"hvac_retries":         "0",
		"mqtt_connected":       false,
		"mqtt_error_code":      0,
		"wifi_access_point":    "the_ssid",
		"wifi_signal_strength": "-66",
	}
}
