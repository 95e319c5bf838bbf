package main

import "net/http"

func (app *application) listTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := app.articleService.Tags(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"tags": tags}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
