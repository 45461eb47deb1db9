package validation

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StrictJSONSerializer decodes request bodies like echo's default
// serializer but rejects fields the target struct does not declare.
type StrictJSONSerializer struct {
	echo.DefaultJSONSerializer
}

func (StrictJSONSerializer) Deserialize(c echo.Context, i any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(i)
	if err == nil {
		return nil
	}

	if ute, ok := err.(*json.UnmarshalTypeError); ok {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("field %s must be %v", ute.Field, ute.Type)).SetInternal(err)
	}
	if se, ok := err.(*json.SyntaxError); ok {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("malformed JSON at offset %d", se.Offset)).SetInternal(err)
	}

	return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
}
