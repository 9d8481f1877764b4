package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/domain/normalizer"
	blog "ceylon_travel/internal/services/blog_service"
	"ceylon_travel/internal/storage"
	"ceylon_travel/internal/transport/http/dto"
)

// Ответы блога отдаются без конверта {success, data}; backend виден только в заголовках.

// ListBlogPosts godoc
// @Summary Посты блога
// @Description Без id возвращает массив постов, с id один пост. Ответ без конверта.
// @Tags blog
// @Produce json
// @Param id query string false "ID поста"
// @Param status query string false "Draft, Published или Archived"
// @Param category query string false "Категория"
// @Success 200 {array} models.BlogPost
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/blog [get]
func (r *Routers) ListBlogPosts(c echo.Context) error {
	const op = "http.routers.ListBlogPosts"
	log := r.log.With(slog.String("op", op))

	var q dto.BlogQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(q); err != nil {
		return badRequest(c, err)
	}

	if c.QueryParams().Has("id") {
		post, out, err := r.BlogService.Get(c.Request().Context(), models.ID(q.ID))
		if err != nil {
			return r.fail(c, log, err)
		}
		setStorage(c, out)
		return c.JSON(http.StatusOK, post)
	}

	posts, out, err := r.BlogService.List(c.Request().Context(), blog.BlogFilter{Status: q.Status, Category: q.Category})
	if err != nil {
		return r.fail(c, log, err)
	}

	setStorage(c, out)
	return c.JSON(http.StatusOK, posts)
}

// CreateBlogPost godoc
// @Summary Создание поста
// @Description id назначается хранилищем. Переданный пустой или нулевой id отклоняется.
// @Tags blog
// @Accept json
// @Produce json
// @Param request body models.BlogPost true "Пост"
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/blog [post]
func (r *Routers) CreateBlogPost(c echo.Context) error {
	const op = "http.routers.CreateBlogPost"
	log := r.log.With(slog.String("op", op))

	raw, err := bindBody(c)
	if err != nil {
		return badRequest(c, err)
	}
	if v, ok := raw["id"]; ok && !models.IDFromAny(v).Valid() {
		return r.fail(c, log, storage.Validation("blog post id must be non-empty and non-zero when present"))
	}

	post, out, err := r.BlogService.Create(c.Request().Context(), normalizer.BlogPost(raw))
	if err != nil {
		return r.fail(c, log, err)
	}

	setStorage(c, out)
	return c.JSON(http.StatusCreated, post)
}

// UpdateBlogPost godoc
// @Summary Обновление поста
// @Description id передается в теле.
// @Tags blog
// @Accept json
// @Produce json
// @Param request body models.BlogPost true "Пост с id"
// @Success 200 {object} models.BlogPost
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/blog [put]
func (r *Routers) UpdateBlogPost(c echo.Context) error {
	const op = "http.routers.UpdateBlogPost"
	log := r.log.With(slog.String("op", op))

	raw, err := bindBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	post, out, err := r.BlogService.Update(c.Request().Context(), normalizer.BlogPost(raw))
	if err != nil {
		return r.fail(c, log, err)
	}

	setStorage(c, out)
	return c.JSON(http.StatusOK, post)
}

// DeleteBlogPost godoc
// @Summary Удаление поста
// @Tags blog
// @Produce json
// @Param id query string true "ID поста"
// @Success 200 {object} object{deleted=bool}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/blog [delete]
func (r *Routers) DeleteBlogPost(c echo.Context) error {
	const op = "http.routers.DeleteBlogPost"
	log := r.log.With(slog.String("op", op))

	var q dto.IDQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, err)
	}

	out, err := r.BlogService.Delete(c.Request().Context(), models.ID(q.ID))
	if err != nil {
		return r.fail(c, log, err)
	}

	setStorage(c, out)
	return c.JSON(http.StatusOK, map[string]any{"deleted": true, "id": models.ID(q.ID)})
}
