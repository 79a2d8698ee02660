package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/dinedex/dinedex/server/service/importer"
	"github.com/dinedex/dinedex/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type BusinessHour struct {
	ID     int32 `json:"id"`
	Day    int32 `json:"day"`
	Opens  int32 `json:"opens"`
	Closes int32 `json:"closes"`
}

type Restaurant struct {
	ID          int32   `json:"id"`
	UID         string  `json:"uid"`
	Name        string  `json:"name"`
	Cuisine     *string `json:"cuisine,omitempty"`
	Price       *int32  `json:"price,omitempty"`
	Rating      *int32  `json:"rating,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	CreatedTs   int64   `json:"createdTs"`
	UpdatedTs   int64   `json:"updatedTs"`

	BusinessHours []*BusinessHour `json:"businessHours,omitempty"`
}

type ListRestaurantsResponse struct {
	Restaurants []*Restaurant `json:"restaurants"`
	Total       int           `json:"total"`
	Page        int           `json:"page"`
	PageSize    int           `json:"pageSize"`
}

type CreateRestaurantRequest struct {
	Name        string  `json:"name"`
	UID         string  `json:"uid"`
	Cuisine     *string `json:"cuisine"`
	Price       *int32  `json:"price"`
	Rating      *int32  `json:"rating"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

type AddBusinessHoursRequest struct {
	Days   []int32 `json:"days"`
	Opens  int32   `json:"opens"`
	Closes int32   `json:"closes"`
}

func (s *APIV1Service) listRestaurants(c echo.Context) error {
	ctx := c.Request().Context()
	find := &store.FindRestaurant{}

	if name := c.QueryParam("name"); name != "" {
		find.NameSearch = &name
	}
	if cuisine := c.QueryParam("cuisine"); cuisine != "" {
		find.CuisineSearch = &cuisine
	}
	switch status := c.QueryParam("status"); status {
	case "":
	case "open":
		find.OpenAt = nowOpenFilter(true)
	case "closed":
		find.OpenAt = nowOpenFilter(false)
	default:
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "status must be open or closed"})
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid page"})
		}
		page = n
	}
	pageSize := defaultPageSize
	if v := c.QueryParam("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageSize {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid pageSize"})
		}
		pageSize = n
	}

	total, err := s.Store.CountRestaurants(ctx, find)
	if err != nil {
		return respondError(c, err)
	}

	limit := pageSize
	offset := (page - 1) * pageSize
	find.Limit = &limit
	find.Offset = &offset
	list, err := s.Store.ListRestaurants(ctx, find)
	if err != nil {
		return respondError(c, err)
	}

	response := &ListRestaurantsResponse{
		Restaurants: make([]*Restaurant, 0, len(list)),
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}
	for _, restaurant := range list {
		response.Restaurants = append(response.Restaurants, convertRestaurant(restaurant, nil))
	}
	return c.JSON(http.StatusOK, response)
}

func (s *APIV1Service) getRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	restaurant, err := s.Store.GetRestaurant(ctx, &store.FindRestaurant{UID: &uid})
	if err != nil {
		return respondError(c, err)
	}
	if restaurant == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "restaurant not found"})
	}

	hourList, err := s.Store.ListBusinessHours(ctx, &store.FindBusinessHour{RestaurantID: &restaurant.ID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, convertRestaurant(restaurant, hourList))
}

func (s *APIV1Service) createRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	request := &CreateRestaurantRequest{}
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "malformed request body"})
	}

	uid := request.UID
	if uid == "" {
		uid = importer.Slugify(request.Name)
		if uid == "" {
			uid = shortuuid.New()
		}
	}
	create := &store.Restaurant{
		UID:         uid,
		Name:        request.Name,
		Cuisine:     request.Cuisine,
		Price:       request.Price,
		Rating:      request.Rating,
		Location:    request.Location,
		Description: request.Description,
	}
	if err := importer.ValidateRestaurant(create); err != nil {
		return respondError(c, err)
	}

	restaurant, err := s.Store.CreateRestaurant(ctx, create)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, convertRestaurant(restaurant, nil))
}

func (s *APIV1Service) deleteRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	restaurant, err := s.Store.GetRestaurant(ctx, &store.FindRestaurant{UID: &uid})
	if err != nil {
		return respondError(c, err)
	}
	if restaurant == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "restaurant not found"})
	}
	if err := s.Store.DeleteRestaurant(ctx, &store.DeleteRestaurant{ID: restaurant.ID}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

func (s *APIV1Service) addBusinessHours(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	restaurant, err := s.Store.GetRestaurant(ctx, &store.FindRestaurant{UID: &uid})
	if err != nil {
		return respondError(c, err)
	}
	if restaurant == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "restaurant not found"})
	}

	request := &AddBusinessHoursRequest{}
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "malformed request body"})
	}
	if len(request.Days) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "days must not be empty"})
	}

	if err := s.HoursService.CreateMultiple(ctx, restaurant.ID, request.Days, request.Opens, request.Closes); err != nil {
		return respondError(c, err)
	}
	if _, err := s.HoursService.MergeAdjacent(ctx, restaurant.ID); err != nil {
		return respondError(c, err)
	}

	hourList, err := s.Store.ListBusinessHours(ctx, &store.FindBusinessHour{RestaurantID: &restaurant.ID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, convertRestaurant(restaurant, hourList))
}

func convertRestaurant(restaurant *store.Restaurant, hourList []*store.BusinessHour) *Restaurant {
	response := &Restaurant{
		ID:          restaurant.ID,
		UID:         restaurant.UID,
		Name:        restaurant.Name,
		Cuisine:     restaurant.Cuisine,
		Price:       restaurant.Price,
		Rating:      restaurant.Rating,
		Location:    restaurant.Location,
		Description: restaurant.Description,
		CreatedTs:   restaurant.CreatedTs,
		UpdatedTs:   restaurant.UpdatedTs,
	}
	for _, hour := range hourList {
		response.BusinessHours = append(response.BusinessHours, &BusinessHour{
			ID:     hour.ID,
			Day:    hour.Day,
			Opens:  hour.Opens,
			Closes: hour.Closes,
		})
	}
	return response
}
