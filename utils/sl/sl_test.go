package sl_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"barbershop-web/utils/sl"
)

func TestErr_ReturnsErrorAttr(t *testing.T) {
	attr := sl.Err(errors.New("backend unreachable"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("backend unreachable"), attr.Value)
}
