package site

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <div id="content">
    <h1>{{.Title}}</h1>
    {{if .Readme}}<div class="readme">
{{.Readme}}
    </div>{{end}}
    <div id="modulesouter">
      <h3>Modules</h3>
      <ul id="modules">
{{- range .Pages}}
        <li><a href="{{.Href}}">{{.Module}}</a></li>
{{- else}}
        <li class="empty">No pages found.</li>
{{- end}}
      </ul>
    </div>
  </div>
</body>
</html>
`
