package handle

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/ports/driver"
	"membro-hub/internal/mylogger"
)

type MembroHandler struct {
	membroService driver.IMembroService
	mylog         mylogger.Logger
}

func NewMembroHandler(membroService driver.IMembroService, mylog mylogger.Logger) *MembroHandler {
	return &MembroHandler{
		membroService: membroService,
		mylog:         mylog,
	}
}

func (mh *MembroHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		f := dto.ParseFilter(query.Get("q"), query.Get("filters_json"))
		page := intParam(query.Get("page"), 1)
		perPage := intParam(query.Get("per_page"), 0)

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		result, err := mh.membroService.List(ctx, f, page, perPage)
		if err != nil {
			mh.mylog.Action("ListMembros").Error("failed to list membros", err)
			jsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, result)
	}
}

func (mh *MembroHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		row, err := mh.membroService.Get(ctx, id)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, row)
	}
}

func (mh *MembroHandler) Aggregate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		field := query.Get("field")
		f := dto.ParseFilter(query.Get("q"), query.Get("filters_json"))
		limit := intParam(query.Get("limit"), 0)

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		result, err := mh.membroService.Aggregate(ctx, field, f, limit)
		if err != nil {
			mh.mylog.Action("AggregateMembros").Error("aggregation failed", err)
			jsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, result)
	}
}

func (mh *MembroHandler) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		f := dto.ParseFilter(query.Get("q"), query.Get("filters_json"))

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		stats, err := mh.membroService.Stats(ctx, f)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, stats)
	}
}

func (mh *MembroHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.MembroPayload
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		id, err := mh.membroService.Create(ctx, req.Data)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"id":      id,
		})
	}
}

func (mh *MembroHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var req dto.MembroPayload
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := mh.membroService.Update(ctx, id, req.Data); err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

// intParam parses a positive integer query parameter, falling back to def
// when absent or malformed.
func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
