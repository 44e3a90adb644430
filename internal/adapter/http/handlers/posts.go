package handlers

import (
	"net/http"
	"skillink/internal/adapter/http/dto"
	"skillink/internal/adapter/http/mapper"
	"skillink/internal/adapter/http/middleware"
	"skillink/internal/adapter/http/validation"
	"skillink/internal/core/ports"
	"skillink/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	filter, err := validation.BuildPostFilter(c.Query("category"), c.Query("q"), c.Query("minPrice"), c.Query("maxPrice"))
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidFilter)
		return
	}

	posts, err := h.postService.ListPosts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListPosts, "failed to list posts")
		return
	}

	c.JSON(http.StatusOK, mapper.ToPostItems(posts))
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := uintParam(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetPost, "failed to get post", zap.Uint64("post_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToPostItem(post))
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.PostRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), middleware.GetActor(c), validation.BuildPostDraft(req, raw))
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreatePost, "failed to create post")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToPostItem(post))
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := uintParam(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}

	var req dto.PostRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), middleware.GetActor(c), id, validation.BuildPostDraft(req, raw))
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdatePost, "failed to update post", zap.Uint64("post_id", id))
		return
	}

	c.JSON(http.StatusOK, mapper.ToPostItem(post))
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := uintParam(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondError(c, err, apierrors.MsgFailDeletePost, "failed to delete post", zap.Uint64("post_id", id))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PostHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, mapper.ToCategories(h.postService.Categories()))
}
