package server

import (
	"simplepost/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts/
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body models.PostCreate true "Post to create"
// @Success 201 {object} models.Post
// @Failure 422 {object} models.ErrorResponse
// @Router /posts/ [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req models.PostCreate
	if err := parseJSONBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.CreatePost(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListPosts handles GET /posts/
// @Summary List posts
// @Description Returns posts ordered by id.
// @Tags posts
// @Produce json
// @Param skip query int false "Number of posts to skip" default(0)
// @Param limit query int false "Maximum number of posts to return" default(100)
// @Success 200 {array} models.Post
// @Failure 422 {object} models.ErrorResponse
// @Router /posts/ [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return respondError(c, err)
	}

	posts, err := s.postService.ListPosts(c.UserContext(), page.Skip, page.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PUT /posts/:id
// @Summary Update a post
// @Description Applies only the fields present in the body and refreshes updated_at.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body models.PostUpdate true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.PostUpdate
	if err := parseJSONBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
// @Summary Delete a post
// @Description Returns the post as it was before deletion.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.DeletePost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}
