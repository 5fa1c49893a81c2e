package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// commentPayload keeps post_id optional so the path id can stand in.
type commentPayload struct {
	Text   string `json:"text"`
	PostID *int   `json:"post_id"`
}

// Index handles GET /api/posts/{id}/comments
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r)
	if err != nil {
		handleError(w, r, err, MsgCommentsRetrieveFailed)
		return
	}

	comments, err := cc.commentService.ListPostComments(r.Context(), postID)
	if err != nil {
		handleError(w, r, err, MsgCommentsRetrieveFailed)
		return
	}
	sendJSON(w, r, http.StatusOK, comments)
}

// Create handles POST /api/posts/{id}/comments. The post is taken from the
// body's post_id, or from the path when the body has none.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	pathPostID, err := pathID(r)
	if err != nil {
		handleError(w, r, err, MsgCommentSaveFailed)
		return
	}

	var payload commentPayload
	decodeBody(w, r, &payload)

	comment := models.Comment{Text: payload.Text, PostID: pathPostID}
	if payload.PostID != nil {
		comment.PostID = *payload.PostID
	}

	created, err := cc.commentService.CreateComment(r.Context(), comment)
	if err != nil {
		handleError(w, r, err, MsgCommentSaveFailed)
		return
	}
	sendJSON(w, r, http.StatusOK, created)
}
