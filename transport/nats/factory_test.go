package nats

import (
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"github.com/stretchr/testify/assert"

	"github.com/flarexio/agrimithra"
)

func errorMsg(code, description string) *nats.Msg {
	msg := nats.NewMsg("edges.test.agrimithra.add_document")
	msg.Header.Set(micro.ErrorCodeHeader, code)
	msg.Header.Set(micro.ErrorHeader, description)
	return msg
}

func TestError(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(Error(nats.NewMsg("edges.test.agrimithra.status")))
	assert.Error(Error(nil))

	err := Error(errorMsg("409", "document already exists: Coconut"))
	assert.True(errors.Is(err, agrimithra.ErrDocumentExists))

	err = Error(errorMsg("404", "crop guide not found: Mango"))
	assert.True(errors.Is(err, agrimithra.ErrGuideNotFound))

	err = Error(errorMsg("400", "invalid document"))
	assert.True(errors.Is(err, agrimithra.ErrInvalidDocument))

	err = Error(errorMsg("417", "boom"))
	assert.EqualError(err, "417:boom")
}

func TestErrorCode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("409", errorCode(agrimithra.ErrDocumentExists))
	assert.Equal("400", errorCode(agrimithra.ErrInvalidDocument))
	assert.Equal("404", errorCode(agrimithra.ErrGuideNotFound))
	assert.Equal("417", errorCode(errors.New("other")))
}
