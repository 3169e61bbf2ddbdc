package http

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/aretw0/automata/pkg/runner"
)

// errorFragment is swapped into the page when a mod-three run fails.
const errorFragment = `<strong class="text-red-700">Error!</strong>`

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html lang="en">
    <head>
        <meta charset="utf-8">
        <meta name="viewport" content="width=device-width, initial-scale=1">
        <title>{{.Title}}</title>
        <script src="https://unpkg.com/htmx.org@2.0.4"></script>
        <script src="https://cdn.tailwindcss.com"></script>
    </head>
    <body class="bg-[#FDFDFC] p-6 lg:p-8 text-gray-800">
        <div class="w-lg mx-auto mt-6">
            <h1 class="mb-1 p-2 text-3xl"><strong>{{.Title}}</strong></h1>
            <form>
                <div class="flex flex-row justify-start items-start">
                    <label class="block p-2">Enter a number in binary
                        <input
                            class="block border border-gray-400 w-3xs p-1"
                            name="binaryInput"
                            required="required"
                            type="text"
                            maxlength="{{.MaxLength}}"
                            placeholder="" />
                    </label>
                    <div class="p-2">
                        <span class="block">Remainder</span>
                        <span id="remainder" class="block border border-gray-400 bg-amber-100 w-[6rem] p-1">--</span>
                    </div>
                </div>
                <button type="button" class="block border border-blue-400 bg-blue-100 text-blue-900 hover:bg-blue-800 hover:text-blue-200 m-2 p-2 font-bold"
                    hx-post="/modthree"
                    hx-trigger="click"
                    hx-target="#remainder"
                    hx-swap="innerHTML">
                    Run Mod-Three
                </button>
            </form>
        </div>
    </body>
</html>
`))

// Welcome handles the GET / request.
func (s *Server) Welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Title     string
		MaxLength int
	}{
		Title:     "Mod-Three Finite State Machine",
		MaxLength: 50,
	}
	if err := welcomeTemplate.Execute(w, data); err != nil {
		s.Logger.Error("welcome render failed", "error", err)
	}
}

// ModThree handles the POST /modthree request. It answers with the remainder
// as plain text, or with an error fragment for missing or rejected input.
// The field is trimmed first; blank counts as missing.
func (s *Server) ModThree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := r.ParseForm(); err != nil {
		fmt.Fprint(w, errorFragment)
		return
	}
	value := strings.TrimSpace(r.PostForm.Get("binaryInput"))
	if value == "" {
		fmt.Fprint(w, errorFragment)
		return
	}

	input, err := runner.SanitizeInputWithLimit(value, s.MaxInputSize)
	if err != nil {
		fmt.Fprint(w, errorFragment)
		return
	}

	out, err := s.modThree.Process(r.Context(), input)
	if err != nil {
		s.Logger.Debug("modthree run failed", "error", err)
		fmt.Fprint(w, errorFragment)
		return
	}
	fmt.Fprint(w, out)
}
