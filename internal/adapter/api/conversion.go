package api

import (
	"github.com/burenotti/go_bodyfat_backend/internal/domain/units"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"math"
	"net/http"
)

func (s *Server) MountConversion() {
	group := s.handler.Group("/convert")
	group.GET("/weight", s.ConvertWeight)
	group.GET("/height", s.ConvertHeight)
}

type WeightResponse struct {
	Kg       float64 `json:"kg"`
	Lbs      float64 `json:"lbs"`
	KgInput  string  `json:"kg_input"`
	LbsInput string  `json:"lbs_input"`
}

func (s *Server) ConvertWeight(c echo.Context) error {
	var kg, lbs float64
	params := c.QueryParams()
	err := echo.QueryParamsBinder(c).
		Float64("kg", &kg).
		Float64("lbs", &lbs).
		BindError()
	if err != nil || !finite(kg, lbs) {
		return JsonError(c, http.StatusBadRequest, "kg and lbs must be numbers")
	}

	switch {
	case params.Has("kg"):
		lbs = units.KgToLbs(kg)
	case params.Has("lbs"):
		kg = units.LbsToKg(lbs)
	default:
		return JsonError(c, http.StatusBadRequest, "either kg or lbs is required")
	}

	return c.JSON(http.StatusOK, WeightResponse{
		Kg:       kg,
		Lbs:      lbs,
		KgInput:  units.FormatForInput(kg, 1),
		LbsInput: units.FormatForInput(lbs, 1),
	})
}

type HeightResponse struct {
	Cm      float64 `json:"cm"`
	Feet    int     `json:"ft"`
	Inches  float64 `json:"in"`
	CmInput string  `json:"cm_input"`
}

func (s *Server) ConvertHeight(c echo.Context) error {
	var cm, ft, in float64
	params := c.QueryParams()
	err := echo.QueryParamsBinder(c).
		Float64("cm", &cm).
		Float64("ft", &ft).
		Float64("in", &in).
		BindError()
	if err != nil || !finite(cm, ft, in) {
		return JsonError(c, http.StatusBadRequest, "cm, ft and in must be numbers")
	}

	if !params.Has("cm") {
		var ftPtr, inPtr *float64
		if params.Has("ft") {
			ftPtr = &ft
		}
		if params.Has("in") {
			inPtr = &in
		}
		var ok bool
		if cm, ok = units.FtInToCm(ftPtr, inPtr); !ok {
			return JsonError(c, http.StatusBadRequest, "either cm or both ft and in are required")
		}
	}

	split := units.CmToFtIn(cm)
	return c.JSON(http.StatusOK, HeightResponse{
		Cm:      cm,
		Feet:    split.Feet,
		Inches:  split.Inches,
		CmInput: units.FormatForInput(cm, 1),
	})
}

// finite rejects NaN and infinities, which the query binder accepts.
func finite(values ...float64) bool {
	return lo.EveryBy(values, func(v float64) bool {
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	})
}
