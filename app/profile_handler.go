package main

import (
	"net/http"

	"github.com/sushihentaime/conduit/internal/userservice"
)

func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	username := app.readPathParam(r, "username")
	viewer := app.getUserContext(r)

	target, err := app.userService.GetByUsername(r.Context(), username)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"profile": userservice.NewProfile(target, viewer)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) followUserHandler(w http.ResponseWriter, r *http.Request) {
	username := app.readPathParam(r, "username")
	viewer := app.getUserContext(r)

	target, err := app.userService.Follow(r.Context(), viewer, username)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"profile": userservice.NewProfile(target, viewer)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) unfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	username := app.readPathParam(r, "username")
	viewer := app.getUserContext(r)

	target, err := app.userService.Unfollow(r.Context(), viewer, username)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"profile": userservice.NewProfile(target, viewer)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
