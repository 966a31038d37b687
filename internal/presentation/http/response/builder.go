package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Qathar8/Arianna-beauty/pkg/errorbank"
)

// Builder constructs responses in the canonical {data, error} envelope:
// exactly one of the two is non-null on every reply.
type Builder struct {
	ctx    echo.Context
	status int
	data   any
	err    error
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type envelope struct {
	Data  any        `json:"data"`
	Error *errorBody `json:"error"`
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithData attaches a success payload.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// Build finalises and emits the HTTP response.
func (b *Builder) Build() error {
	if b.err != nil {
		return b.buildError()
	}
	return b.buildSuccess()
}

func (b *Builder) buildSuccess() error {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.ctx.JSON(b.status, envelope{Data: b.data})
}

func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	status := b.status
	if status < 400 {
		status = appErr.StatusCode()
	}
	// Only kind and message are rendered; wrapped causes stay server-side.
	return b.ctx.JSON(status, envelope{
		Error: &errorBody{
			Kind:    string(appErr.Kind()),
			Message: appErr.Message(),
		},
	})
}
