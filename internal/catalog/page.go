package catalog

import (
	"bytes"
	"html/template"
	"io"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Course registration · {{.Term}}</title>
</head>
<body>
<main class="container">
<h1>Course registration <small class="text-muted">{{.Term}}</small></h1>
<section class="courses">
{{- range .Courses}}
<div class="course" data-course="{{.Code}}">
<label>{{.Code}} · {{.Title}} <span class="text-muted">({{.Credits}} cr)</span>
<select class="form-select section-picker" data-course-code="{{.Code}}" data-course-title="{{.Title}}">
<option value="">Choose a section</option>
{{- $credits := .Credits}}
{{- range .Sections}}
<option value="{{.ID}}" data-section-label="{{.Label}}" data-schedule="{{.Schedule}}" data-credits="{{$credits}}" data-fee="{{.Fee}}">{{.Label}} · {{.Schedule}}</option>
{{- end}}
</select>
</label>
</div>
{{- end}}
</section>
<aside class="card" data-cart-list data-credits-remaining="{{.CreditsRemaining}}" data-currency="{{.Currency}}">
<h2>Your selections</h2>
<div data-cart-items></div>
<p>Credits remaining: <strong data-credit-remaining></strong></p>
<p>Fee estimate: <strong data-fee-estimate></strong></p>
</aside>
</main>
<script>
(function () {
  function post(body) {
    fetch("/events", {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body)})
      .then(function (r) {
        if (!r.ok) { window.location.reload(); return null; }
        return r.json();
      })
      .then(function (res) {
        if (!res) { return; }
        var panel = document.querySelector("[data-cart-list]");
        if (panel && res.panel) { panel.outerHTML = res.panel; }
        if (res.reset) {
          var s = document.querySelector('.section-picker[data-course-code="' + res.reset + '"]');
          if (s) { s.value = ""; }
        }
      });
  }
  document.addEventListener("change", function (e) {
    var t = e.target;
    if (t.classList && t.classList.contains("section-picker")) {
      post({type: "change", course_code: t.dataset.courseCode || "", value: t.value});
    }
  });
  document.addEventListener("click", function (e) {
    var key = e.target.dataset && e.target.dataset.remove;
    if (key) { post({type: "click", remove: key}); }
  });
})();
</script>
</body>
</html>
`))

// RenderPage writes the registration page for c.
func RenderPage(w io.Writer, c Catalog) error {
	return pageTmpl.Execute(w, c)
}

// Page renders the registration page into memory.
func Page(c Catalog) ([]byte, error) {
	var b bytes.Buffer
	if err := RenderPage(&b, c); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
