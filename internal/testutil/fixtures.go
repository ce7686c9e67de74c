// Package testutil provides testing utilities and a miniature frontend tree.
package testutil

// Stylesheet is the content of statics/mvp.css in the fixture tree.
const Stylesheet = ":root {\n  --color: #118bee;\n}\nbody { margin: 0; }\n"

// FrontendFiles mirrors the layout of src/frontend with trimmed-down views.
// Paths are relative to the frontend root.
var FrontendFiles = map[string]string{
	"statics/mvp.css": Stylesheet,

	"en-us/partials/header.mst": `<!DOCTYPE html><html><head><title>{{header.hostname}}</title>` +
		`<link rel="stylesheet" href="/css"></head><body>` +
		`<header><h1 id="host">{{hostname}}</h1>{{#showControl}}<a href="/control">Control</a>{{/showControl}}` +
		`{{#showLogout}}<a href="/logout">Logout</a>{{/showLogout}}</header>`,
	"en-us/partials/footer.mst":    `<footer>MitsuQTT {{footer.version}} ({{footer.git_hash}})</footer></body></html>`,
	"en-us/partials/countdown.mst": `<p id="countdown">Rebooting in <span>10</span> seconds</p>`,

	"en-us/views/mqtt/_text_field.mst": `<p class="mqtt-field"><b>{{label}}</b><br/>` +
		`<input id='{{param}}' name='{{param}}' placeholder='{{placeholder}}' value='{{value}}'></p>`,

	"en-us/views/index.mst": `{{> header}}<main id="index"><a href="/setup">Setup</a><a href="/status">Status</a>` +
		`<a href="/reboot">Reboot</a></main>{{> footer}}`,
	"en-us/views/captive/index.mst": `{{> header}}<main id="captive-index"><form action="/captive/save" method="post">` +
		`<input name="hn" value="{{hostname}}"></form></main>{{> footer}}`,
	"en-us/views/captive/reboot.mst": `{{> header}}<main id="captive-reboot">{{> countdown}}</main>{{> footer}}`,
	"en-us/views/captive/save.mst": `{{> header}}<main id="captive-save">Joining {{access_point}} as {{hostname}}</main>` +
		`{{> footer}}`,
	"en-us/views/mqtt/index.mst": `{{> header}}<main id="mqtt"><form method="post">` +
		`{{#friendlyName}}{{> mqttTextField}}{{/friendlyName}}` +
		`{{#server}}{{> mqttTextField}}{{/server}}` +
		`<p><b>Port (default 1883)</b><input id='ml' name='ml' value='{{port.value}}'></p>` +
		`{{#user}}{{> mqttTextField}}{{/user}}` +
		`<p><b>Password</b><input id='mp' name='mp' type='password' value='{{password.value}}'></p>` +
		`{{#topic}}{{> mqttTextField}}{{/topic}}` +
		`</form></main>{{> footer}}`,
	"en-us/views/control.mst": `{{> header}}<main id="control">` +
		`<p>Current {{current_temp}}&deg;{{temp_unit}}, target {{target_temp}} ({{min_temp}}-{{max_temp}} step {{temp_step}})</p>` +
		`{{#power}}<span id="power">ON</span>{{/power}}{{^power}}<span id="power">OFF</span>{{/power}}` +
		`{{#supportHeatMode}}<option value="heat">Heat</option>{{/supportHeatMode}}` +
		`{{#mode.cool}}<option value="cool" selected>Cool</option>{{/mode.cool}}` +
		`{{#fan.3}}<option value="3" selected>Fan 3</option>{{/fan.3}}` +
		`{{#vane.auto}}<option value="AUTO" selected>Vane auto</option>{{/vane.auto}}` +
		`{{#widevane.1}}<option value="1" selected>Wide vane 1</option>{{/widevane.1}}` +
		`</main>{{> footer}}`,
	"en-us/views/others.mst": `{{> header}}<main id="others"><p>Topic {{topic}}</p>` +
		`<ul>{{#toggles}}<li><label>{{title}}<input type="checkbox" name="{{name}}"{{#value}} checked{{/value}}></label></li>{{/toggles}}</ul>` +
		`</main>{{> footer}}`,
	"en-us/views/reboot.mst": `{{> header}}<main id="reboot">{{#saving}}<p>Saving configuration</p>{{/saving}}` +
		`{{> countdown}}</main>{{> footer}}`,
	"en-us/views/reset.mst": `{{> header}}<main id="reset"><p>Reset will reconnect to {{SSID}}</p></main>{{> footer}}`,
	"en-us/views/setup.mst": `{{> header}}<main id="setup"><a href="/mqtt">MQTT</a><a href="/wifi">WiFi</a>` +
		`<a href="/unit">Unit</a><a href="/others">Others</a></main>{{> footer}}`,
	"en-us/views/status.mst": `{{> header}}<main id="status">` +
		`<p>Uptime {{uptime.years}}y {{uptime.days}}d {{uptime.hours}}h {{uptime.minutes}}m {{uptime.seconds}}s</p>` +
		`{{#hvac_connected}}<p id="hvac">HVAC connected (retries {{hvac_retries}})</p>{{/hvac_connected}}` +
		`{{^mqtt_connected}}<p id="mqtt">MQTT disconnected{{#mqtt_error_code}} (code {{mqtt_error_code}}){{/mqtt_error_code}}</p>{{/mqtt_connected}}` +
		`<p>WiFi {{wifi_access_point}} {{wifi_signal_strength}} dBm</p></main>{{> footer}}`,
	"en-us/views/unit.mst": `{{> header}}<main id="unit"><form method="post">` +
		`<input name="min_temp" value="{{min_temp}}"><input name="max_temp" value="{{max_temp}}">` +
		`<input name="temp_step" value="{{temp_step}}">` +
		`<select name="tu">{{#temp_unit_c}}<option value="cel" selected>Celsius</option><option value="fah">Fahrenheit</option>{{/temp_unit_c}}` +
		`{{^temp_unit_c}}<option value="cel">Celsius</option><option value="fah" selected>Fahrenheit</option>{{/temp_unit_c}}</select>` +
		`<select name="md">{{#mode_selection_all}}<option value="all" selected>All modes</option>{{/mode_selection_all}}` +
		`{{^mode_selection_all}}<option value="nht" selected>No heat</option>{{/mode_selection_all}}</select>` +
		`<input id="lpw" name="lpw" type="password" value="{{login_password}}">` +
		`</form></main>{{> footer}}`,
	"en-us/views/upgrade.mst": `{{> header}}<main id="upgrade"><a href="/upload">Upload firmware</a></main>{{> footer}}`,
	"en-us/views/upload.mst": `{{> header}}<main id="upload"><form method="post" enctype="multipart/form-data">` +
		`<input type="file" name="update"></form></main>{{> footer}}`,
	"en-us/views/wifi.mst": `{{> header}}<main id="wifi"><input name="ssid" value="{{access_point}}">` +
		`<input name="psk" type="password" value="{{password}}"><input name="hn" value="{{hostname}}"></main>{{> footer}}`,
}
