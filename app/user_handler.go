package main

import (
	"net/http"

	"github.com/sushihentaime/conduit/internal/userservice"
)

type registerUserRequest struct {
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input registerUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.Register(r.Context(), input.User.Username, input.User.Email, input.User.Password)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	token, err := app.auth.IssueToken(user.Username)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": userservice.NewAuthUser(user, token)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type loginUserRequest struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.Authenticate(r.Context(), input.User.Email, input.User.Password)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	token, err := app.auth.IssueToken(user.Username)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": userservice.NewAuthUser(user, token)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	token, err := app.auth.IssueToken(user.Username)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": userservice.NewAuthUser(user, token)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updateUserRequest struct {
	User struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	} `json:"user"`
}

func (app *application) updateCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	var input updateUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	params := userservice.UpdateUserParams{
		Username: input.User.Username,
		Email:    input.User.Email,
		Password: input.User.Password,
		Bio:      input.User.Bio,
		Image:    input.User.Image,
	}

	err = app.userService.Update(r.Context(), user, params)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	token, err := app.auth.IssueToken(user.Username)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": userservice.NewAuthUser(user, token)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
