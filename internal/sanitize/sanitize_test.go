package sanitize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Budi Santoso", "Budi Santoso"},
		{"trims", "  hello \n", "hello"},
		{"strips tags keeps text", "<b>bold</b> move", "bold move"},
		{"drops script body", "hi<script>alert('x')</script>there", "hithere"},
		{"drops uppercase script body", "<SCRIPT type=\"text/javascript\">steal()</SCRIPT>ok", "ok"},
		{"drops style body", "<style>body{}</style>note", "note"},
		{"keeps apostrophes", "O'Brien", "O'Brien"},
		{"keeps double quotes", `say "hi"`, `say "hi"`},
		{"keeps ampersands", "Tom & Jerry", "Tom & Jerry"},
		{"ampersand next to stripped markup", `Tom & Jerry "VIP" <b>x</b>`, `Tom & Jerry "VIP" x`},
		{"angle brackets stay escaped", "5 > 3", "5 &gt; 3"},
		{"escaped entity text is not decoded into markup", "&amp;lt;script&amp;gt;", "&lt;script&gt;"},
		{"event handler attribute gone with tag", `<img src=x onerror="alert(1)">pic`, "pic"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.input))
		})
	}
}

func TestString_ScriptNeverSurvives(t *testing.T) {
	inputs := []string{
		"<script>document.cookie</script>",
		"a<script src='evil.js'></script>b",
		"<div><script>var x = 1;</script></div>",
		"<scr<script>ipt>alert(1)</script>",
	}

	for _, in := range inputs {
		out := String(in)
		assert.NotContains(t, out, "<script")
		assert.NotContains(t, out, "document.cookie")
		assert.NotContains(t, out, "var x = 1;")
	}
}

func TestString_Idempotent(t *testing.T) {
	inputs := []string{
		"plain",
		"  spaced  ",
		"Tom & Jerry",
		"1 < 2 > 0",
		"O'Brien said \"hi\"",
		"&lt;b&gt;escaped&lt;/b&gt;",
		"&amp;lt;double&amp;gt;",
		"<p>para</p><script>x()</script>",
		"line\r\nbreak",
		" nbsp ",
		"<a href=\"javascript:alert(1)\">link</a>",
		"unterminated <b",
	}

	for _, in := range inputs {
		once := String(in)
		assert.Equal(t, once, String(once), "input %q", in)
	}
}

func TestValue_Recursive(t *testing.T) {
	var payload map[string]any
	err := json.Unmarshal([]byte(`{
		"name": " <i>Budi</i> ",
		"count": 3,
		"active": true,
		"missing": null,
		"tags": ["<b>langganan</b>", 5],
		"nested": {"notes": "<script>x</script>keep"}
	}`), &payload)
	assert.NoError(t, err)

	Map(payload)

	assert.Equal(t, "Budi", payload["name"])
	assert.Equal(t, float64(3), payload["count"])
	assert.Equal(t, true, payload["active"])
	assert.Nil(t, payload["missing"])
	assert.Equal(t, []any{"langganan", float64(5)}, payload["tags"])
	assert.Equal(t, "keep", payload["nested"].(map[string]any)["notes"])
}

func TestValue_NonStringUnchanged(t *testing.T) {
	assert.Equal(t, 42, Value(42))
	assert.Equal(t, json.Number("12.5"), Value(json.Number("12.5")))
	assert.Nil(t, Value(nil))
	assert.Equal(t, false, Value(false))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "budi@example.com", Email("  Budi@Example.COM "))
	assert.Equal(t, "", Email(""))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "0812-3456-7890", Phone("0812-3456-7890"))
	assert.Equal(t, "+62 (21) 555", Phone("+62 (21) 555"))
	assert.Equal(t, "0812", Phone("0a8b1c2"))
	assert.Equal(t, "", Phone("callme"))
}
