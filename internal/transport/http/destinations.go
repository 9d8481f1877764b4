package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/domain/normalizer"
	"ceylon_travel/internal/transport/http/dto"
	"ceylon_travel/internal/transport/http/dto/response"
)

// ListDestinations godoc
// @Summary Список направлений
// @Description Возвращает направления. includeTourCount=false пропускает подсчет туров. С id возвращает одно направление.
// @Tags destinations
// @Produce json
// @Param id query string false "ID направления"
// @Param includeTourCount query bool false "Считать toursCount" default(true)
// @Param limit query int false "Максимум записей"
// @Success 200 {object} response.Response{data=[]models.Destination}
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/destinations [get]
func (r *Routers) ListDestinations(c echo.Context) error {
	const op = "http.routers.ListDestinations"
	log := r.log.With(slog.String("op", op))

	var q dto.DestinationListQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(q); err != nil {
		return badRequest(c, err)
	}

	if q.ID != "" {
		d, out, err := r.DestinationService.Get(c.Request().Context(), q.ID)
		if err != nil {
			return r.fail(c, log, err)
		}
		return reply(c, http.StatusOK, out, d, "")
	}

	destinations, out, err := r.DestinationService.List(c.Request().Context(), q.WantTourCount(), q.Limit)
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusOK, out, destinations, "")
}

// CreateDestination godoc
// @Summary Создание направления
// @Description id генерируется, если не передан.
// @Tags destinations
// @Accept json
// @Produce json
// @Param request body models.Destination true "Направление"
// @Success 201 {object} response.Response{data=models.Destination}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/destinations [post]
func (r *Routers) CreateDestination(c echo.Context) error {
	const op = "http.routers.CreateDestination"
	log := r.log.With(slog.String("op", op))

	raw, err := bindBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	d, out, err := r.DestinationService.Create(c.Request().Context(), normalizer.Destination(raw))
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusCreated, out, d, "Destination created")
}

// SaveDestination godoc
// @Summary Сохранение направления
// @Description Полная замена документа по id из тела, запись создается, если ее нет.
// @Tags destinations
// @Accept json
// @Produce json
// @Param request body models.Destination true "Направление с id"
// @Success 200 {object} response.Response{data=models.Destination}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/destinations [put]
func (r *Routers) SaveDestination(c echo.Context) error {
	const op = "http.routers.SaveDestination"
	log := r.log.With(slog.String("op", op))

	raw, err := bindBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	d, out, err := r.DestinationService.Save(c.Request().Context(), normalizer.Destination(raw))
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusOK, out, d, "Destination saved")
}

// DeleteDestination godoc
// @Summary Удаление направления
// @Tags destinations
// @Produce json
// @Param id query string true "ID направления"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/destinations [delete]
func (r *Routers) DeleteDestination(c echo.Context) error {
	const op = "http.routers.DeleteDestination"
	log := r.log.With(slog.String("op", op))

	var q dto.IDQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, err)
	}

	out, err := r.DestinationService.Delete(c.Request().Context(), q.ID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return reply(c, http.StatusOK, out, nil, "Destination deleted")
}

// Regions godoc
// @Summary Пресеты регионов
// @Tags destinations
// @Produce json
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/destinations/regions [get]
func (r *Routers) Regions(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(models.Regions, ""))
}
