package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alexanderramin/plancad/internal/contract"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/intelligence"
	"github.com/alexanderramin/plancad/internal/llm"
	"github.com/alexanderramin/plancad/internal/logger"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("malformed request body")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body contract.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(r.Context(), "write response", logger.ErrorF(err))
	}
}

func ok(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusOK, contract.OK(data))
}

func created(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusCreated, contract.OK(data))
}

// scriptFailure reports a failed script. The partial data (logs) still goes
// back to the caller.
func scriptFailure(w http.ResponseWriter, r *http.Request, se *domain.ScriptError, data any) {
	writeJSON(w, r, http.StatusUnprocessableEntity, contract.Response{
		Success: false,
		Data:    data,
		Error:   contract.FromScriptError(se),
	})
}

// fail maps err onto a status code and error envelope.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	if se, isScript := domain.AsScriptError(err); isScript {
		scriptFailure(w, r, se, nil)
		return
	}

	status, code := http.StatusInternalServerError, contract.ErrCodeInternal
	switch {
	case errors.Is(err, errBadBody),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidSnapshot):
		status, code = http.StatusBadRequest, contract.ErrCodeBadRequest
	case errors.Is(err, domain.ErrDrawingNotFound),
		errors.Is(err, domain.ErrShapeNotFound),
		errors.Is(err, domain.ErrLayerNotFound),
		errors.Is(err, domain.ErrTemplateNotFound):
		status, code = http.StatusNotFound, contract.ErrCodeNotFound
	case errors.Is(err, intelligence.ErrDraftingDisabled):
		status, code = http.StatusServiceUnavailable, contract.ErrCodeDisabled
	case errors.Is(err, llm.ErrOllamaUnavailable),
		errors.Is(err, llm.ErrTimeout),
		errors.Is(err, llm.ErrRetryExhausted),
		errors.Is(err, llm.ErrInvalidOutput):
		status, code = http.StatusBadGateway, contract.ErrCodeInternal
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.ErrorF(err),
		)
		msg = "Internal server error"
	}
	writeJSON(w, r, status, contract.Fail(code, msg))
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadBody)
		}
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}
