package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paybridge/paybridge/internal/domain/pay"
)

// errorBody is the common shape of a gateway error response.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// TranslateError turns a transport failure into one typed payment error.
// Statuses outside the table pass through the inner cause unchanged.
func TranslateError(op string, err error) error {
	var se *StatusError
	if !errors.As(err, &se) {
		return err
	}

	kind := kindForStatus(se.StatusCode)
	if kind == "" {
		if se.Err != nil {
			return se.Err
		}
		return err
	}

	return &pay.Error{
		Kind:    kind,
		Op:      op,
		Message: extractMessage(se.Body),
		Err:     se.Err,
	}
}

func kindForStatus(status int) pay.Kind {
	switch status {
	case http.StatusBadRequest:
		return pay.KindBadRequest
	case http.StatusUnauthorized:
		return pay.KindUnauthorized
	case http.StatusPaymentRequired:
		return pay.KindCardError
	case http.StatusNotFound:
		return pay.KindNotFound
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return pay.KindServerUnavailable
	default:
		return ""
	}
}

// extractMessage best-effort pulls a human-readable message out of the error
// body. Parsing is advisory: any failure just omits the detail.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return parsed.Message
}
