package main

import (
	"net/http"

	"github.com/sushihentaime/conduit/internal/articleservice"
)

type addCommentRequest struct {
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
}

func (app *application) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")

	var input addCommentRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	comment, err := app.articleService.AddComment(r.Context(), user, slug, input.Comment.Body)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"comment": articleservice.NewCommentResponse(comment, user, user)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")
	viewer := app.getUserContext(r)

	comments, err := app.articleService.Comments(r.Context(), slug, viewer)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")
	commentID := app.readPathParam(r, "id")
	user := app.getUserContext(r)

	err := app.articleService.DeleteComment(r.Context(), user, slug, commentID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "comment deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
