package adminheader

import (
	"net/http"
	"strconv"
)

// script is the browser counterpart of Inject, for pages served as plain
// static files.
var script = "const headerHtml = `\n" + Fragment + "\n`;\n" + `
document.addEventListener("DOMContentLoaded", () => {
  const container = document.getElementById("` + ContainerID + `");
  if (container) {
    container.innerHTML = headerHtml;
  }
});
`

// ScriptHandler serves the admin header script.
func ScriptHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(script)))
		w.Header().Set("Cache-Control", "public, max-age=3600")

		if r.Method == http.MethodHead {
			return
		}

		_, _ = w.Write([]byte(script))
	})
}
