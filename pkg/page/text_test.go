package page

import "testing"

func TestVisibleText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"collapses whitespace", `<div id="x">  Great   community,
			 loved it!  </div>`, "Great community, loved it!"},
		{"inline elements join", `<div id="x">I <b>really</b> <i>liked</i> it</div>`, "I really liked it"},
		{"blocks break lines", `<div id="x"><p>One</p><p>Two</p></div>`, "One\nTwo"},
		{"br breaks line", `<div id="x">One<br>Two</div>`, "One\nTwo"},
		{"skips script and style", `<div id="x">A<script>var x</script><style>p{}</style>B</div>`, "AB"},
		{"skips hidden", `<div id="x">A<span hidden>x</span><span style="display: none">z</span>B</div>`, "AB"},
		{"keeps aria-hidden", `<div id="x">A <span aria-hidden="true">y</span> B</div>`, "A y B"},
		{"whitespace only", `<div id="x">   
		  </div>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustParse(t, tt.html)
			if got := VisibleText(node(t, d, "#x")); got != tt.want {
				t.Errorf("VisibleText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	d := mustParse(t, `<div id="x"><p>Hello</p><p>world of testimonials</p></div>`)
	n := node(t, d, "#x")
	if got := Snippet(n, 0); got != "Hello world of testimonials" {
		t.Errorf("Snippet(0) = %q", got)
	}
	if got := Snippet(n, 8); got != "Hello w…" {
		t.Errorf("Snippet(8) = %q", got)
	}
}
