package main

import (
	"net/http"

	"github.com/sushihentaime/conduit/internal/articleservice"
)

func (app *application) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	filters := articleservice.ListFilters{
		Tag:       app.readStringQuery(r, "tag"),
		Author:    app.readStringQuery(r, "author"),
		Favorited: app.readStringQuery(r, "favorited"),
		Limit:     limit,
		Offset:    offset,
	}

	viewer := app.getUserContext(r)

	articles, total, err := app.articleService.List(r.Context(), filters)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	data := envelope{
		"articles":      articleservice.NewArticleResponses(articles, viewer),
		"articlesCount": total,
	}

	err = app.writeJSON(w, http.StatusOK, data, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) feedArticlesHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	viewer := app.getUserContext(r)

	articles, total, err := app.articleService.Feed(r.Context(), viewer, limit, offset)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	data := envelope{
		"articles":      articleservice.NewArticleResponses(articles, viewer),
		"articlesCount": total,
	}

	err = app.writeJSON(w, http.StatusOK, data, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")
	viewer := app.getUserContext(r)

	article, err := app.articleService.GetBySlug(r.Context(), slug)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"article": articleservice.NewArticleResponse(article, viewer)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type createArticleRequest struct {
	Article struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
	} `json:"article"`
}

func (app *application) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	var input createArticleRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	author := app.getUserContext(r)

	params := articleservice.CreateArticleParams{
		Title:       input.Article.Title,
		Description: input.Article.Description,
		Body:        input.Article.Body,
		TagList:     input.Article.TagList,
	}

	article, err := app.articleService.Create(r.Context(), author, params)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"article": articleservice.NewArticleResponse(article, author)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updateArticleRequest struct {
	Article struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Body        *string `json:"body"`
	} `json:"article"`
}

func (app *application) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")

	var input updateArticleRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	params := articleservice.UpdateArticleParams{
		Title:       input.Article.Title,
		Description: input.Article.Description,
		Body:        input.Article.Body,
	}

	article, err := app.articleService.Update(r.Context(), user, slug, params)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"article": articleservice.NewArticleResponse(article, user)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")
	user := app.getUserContext(r)

	err := app.articleService.Delete(r.Context(), user, slug)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "article deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) favoriteArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")
	user := app.getUserContext(r)

	article, err := app.articleService.Favorite(r.Context(), user, slug)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"article": articleservice.NewArticleResponse(article, user)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) unfavoriteArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")
	user := app.getUserContext(r)

	article, err := app.articleService.Unfavorite(r.Context(), user, slug)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"article": articleservice.NewArticleResponse(article, user)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
