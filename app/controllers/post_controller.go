package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/services"
)

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles GET /api/posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		handleError(w, r, err, MsgPostsRetrieveFailed)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	sendJSON(w, r, http.StatusOK, posts)
}

// Show handles GET /api/posts/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err, MsgPostRetrieveFailed)
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		handleError(w, r, err, MsgPostRetrieveFailed)
		return
	}
	sendJSON(w, r, http.StatusOK, post)
}

// Create handles POST /api/posts
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	decodeBody(w, r, &post)

	created, err := pc.postService.CreatePost(r.Context(), models.Post{Title: post.Title, Contents: post.Contents})
	if err != nil {
		handleError(w, r, err, MsgPostSaveFailed)
		return
	}
	sendJSON(w, r, http.StatusCreated, created)
}

// Edit handles PUT /api/posts/{id} and answers with the updated post.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err, MsgPostModifyFailed)
		return
	}

	var patch models.Post
	decodeBody(w, r, &patch)

	updated, err := pc.postService.UpdatePost(r.Context(), id, patch)
	if err != nil {
		handleError(w, r, err, MsgPostModifyFailed)
		return
	}
	sendJSON(w, r, http.StatusCreated, updated)
}

// Delete handles DELETE /api/posts/{id} and answers with the removed post.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err, MsgPostRemoveFailed)
		return
	}

	post, err := pc.postService.DeletePost(r.Context(), id)
	if err != nil {
		handleError(w, r, err, MsgPostRemoveFailed)
		return
	}
	sendJSON(w, r, http.StatusOK, post)
}
