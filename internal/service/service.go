// Package service exposes the base and magnitude converters as request/response
// operations. Every call drives a fresh session, so a ConversionService is safe
// for concurrent use by the HTTP server and the batch runner.
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/convkit/internal/baseconv"
	"github.com/agbru/convkit/internal/byteconv"
	apperrors "github.com/agbru/convkit/internal/errors"
	"github.com/agbru/convkit/internal/logging"
	"github.com/agbru/convkit/internal/numeric"
	"github.com/agbru/convkit/pkg/models"
)

const (
	// DefaultMaxInput is the longest accepted input, in bytes.
	DefaultMaxInput = 1 << 20
	// DefaultCacheSize is the number of responses memoised per converter.
	DefaultCacheSize = 1024
)

// ErrInputTooLong is returned when an input exceeds the configured maximum
// length.
var ErrInputTooLong = errors.New("input exceeds maximum length")

// Service defines the conversion operations shared by the outer layers.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// ConvertBase reads req.Value in req.Base and renders it in every base
	// of req.Bases.
	//
	// Parameters:
	//   - ctx: The context for cancellation and tracing.
	//   - req: The value, its base, an optional prefix and the target bases.
	//
	// Returns:
	//   - models.BaseResponse: The projected fields. Input that is not an
	//     integer in req.Base yields Valid=false, not an error.
	//   - error: A ValidationError for a bad base, ErrInputTooLong, or the
	//     context error.
	ConvertBase(ctx context.Context, req models.BaseRequest) (models.BaseResponse, error)

	// ConvertBytes reads req.Value as a magnitude in req.Unit and renders it
	// in every unit of the ladder along with the best unit.
	//
	// Parameters:
	//   - ctx: The context for cancellation and tracing.
	//   - req: The decimal literal and its unit.
	//
	// Returns:
	//   - models.ByteResponse: The projected fields. A malformed literal yields
	//     Valid=false, not an error.
	//   - error: A ValidationError for an unknown unit, ErrInputTooLong, or the
	//     context error.
	ConvertBytes(ctx context.Context, req models.ByteRequest) (models.ByteResponse, error)

	// Detect reports where a pasted string would go in each converter.
	Detect(ctx context.Context, text string) (models.Detection, error)

	// Units lists the unit ladder used by ConvertBytes.
	Units() []models.Unit
}

// ConversionService implements Service on top of baseconv and byteconv
// sessions, with an LRU cache in front of each converter.
type ConversionService struct {
	ladder    byteconv.Ladder
	maxInput  int
	cacheSize int
	logger    logging.Logger
	tracer    trace.Tracer

	baseCache *lru.Cache[string, models.BaseResponse]
	byteCache *lru.Cache[string, models.ByteResponse]
}

// Ensure ConversionService implements Service interface.
var _ Service = (*ConversionService)(nil)

// Option configures a ConversionService.
type Option func(*ConversionService)

// WithMaxInput bounds the length of accepted inputs. Non-positive values keep
// the default.
func WithMaxInput(n int) Option {
	return func(s *ConversionService) {
		if n > 0 {
			s.maxInput = n
		}
	}
}

// WithCacheSize sets the number of responses memoised per converter. Zero
// disables caching.
func WithCacheSize(n int) Option {
	return func(s *ConversionService) {
		s.cacheSize = n
	}
}

// WithLogger sets the logger used for conversion diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(s *ConversionService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLadder replaces the unit ladder. The ladder is copied.
func WithLadder(l byteconv.Ladder) Option {
	return func(s *ConversionService) {
		s.ladder = append(byteconv.Ladder(nil), l...)
	}
}

// NewConversionService creates a ConversionService.
//
// Parameters:
//   - opts: Functional options overriding the defaults.
//
// Returns:
//   - *ConversionService: The service.
//   - error: A ConfigError if the unit ladder is empty.
func NewConversionService(opts ...Option) (*ConversionService, error) {
	s := &ConversionService{
		ladder:    byteconv.DefaultLadder(),
		maxInput:  DefaultMaxInput,
		cacheSize: DefaultCacheSize,
		logger:    logging.NewNopLogger(),
		tracer:    otel.Tracer("convkit/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.ladder) == 0 {
		return nil, apperrors.NewConfigError("unit ladder is empty")
	}
	if s.cacheSize > 0 {
		// lru.New only fails for a non-positive size.
		s.baseCache, _ = lru.New[string, models.BaseResponse](s.cacheSize)
		s.byteCache, _ = lru.New[string, models.ByteResponse](s.cacheSize)
	}
	return s, nil
}

// checkInput rejects inputs longer than the configured maximum.
func (s *ConversionService) checkInput(text string) error {
	if len(text) > s.maxInput {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLong, len(text), s.maxInput)
	}
	return nil
}

// observe records the outcome of one conversion on the span and in metrics.
func (s *ConversionService) observe(span trace.Span, kind string, start time.Time, valid bool, err error) {
	status := statusValid
	switch {
	case err != nil:
		status = statusError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case !valid:
		status = statusInvalid
	}
	span.SetAttributes(attribute.String("convkit.status", status))
	conversionsTotal.WithLabelValues(kind, status).Inc()
	conversionDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func baseKey(req models.BaseRequest, bases []int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(req.Base))
	for _, base := range bases {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(base))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Quote(req.Prefix))
	b.WriteByte('|')
	b.WriteString(req.Value)
	return b.String()
}

// ConvertBase implements Service.
func (s *ConversionService) ConvertBase(ctx context.Context, req models.BaseRequest) (resp models.BaseResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "ConvertBase",
		trace.WithAttributes(attribute.Int("convkit.base", req.Base), attribute.Int("convkit.input_len", len(req.Value))))
	defer span.End()
	start := time.Now()
	defer func() { s.observe(span, kindBase, start, resp.Valid, err) }()

	if err = ctx.Err(); err != nil {
		return models.BaseResponse{}, err
	}
	if err = s.checkInput(req.Value); err != nil {
		return models.BaseResponse{}, err
	}
	if !numeric.ValidBase(req.Base) {
		err = apperrors.NewValidationError("base", fmt.Sprintf("must be between %d and %d", numeric.MinBase, numeric.MaxBase), req.Base)
		return models.BaseResponse{}, err
	}
	bases := req.Bases
	if len(bases) == 0 {
		bases = baseconv.SimpleBases
	}
	for _, b := range bases {
		if !numeric.ValidBase(b) {
			err = apperrors.NewValidationError("bases", fmt.Sprintf("must be between %d and %d", numeric.MinBase, numeric.MaxBase), b)
			return models.BaseResponse{}, err
		}
	}

	key := baseKey(req, bases)
	if s.baseCache != nil {
		if cached, ok := s.baseCache.Get(key); ok {
			cacheHitsTotal.WithLabelValues(kindBase).Inc()
			cached.Fields = slices.Clone(cached.Fields)
			return cached, nil
		}
	}

	session := baseconv.NewSession()
	session.Set(baseconv.Field{Base: req.Base, ID: baseconv.SimpleView}, req.Value, req.Prefix)

	resp = models.BaseResponse{
		Input:  req.Value,
		Base:   req.Base,
		Valid:  session.Value().IsSet(),
		Fields: make([]models.BaseField, 0, len(bases)),
	}
	for _, b := range bases {
		resp.Fields = append(resp.Fields, models.BaseField{
			Base: b,
			Name: baseconv.Name(b),
			Text: session.Get(baseconv.Field{Base: b, ID: baseconv.SimpleView}),
		})
	}
	if resp.Valid {
		resp.Decimal = session.Value().Text(10)
	} else if perr := session.Err(); perr != nil {
		resp.Error = perr.Error()
		s.logger.Debug("base input did not resolve", logging.Int("base", req.Base), logging.Err(perr))
	}

	if s.baseCache != nil {
		s.baseCache.Add(key, resp)
		resp.Fields = slices.Clone(resp.Fields)
	}
	return resp, nil
}

// ConvertBytes implements Service.
func (s *ConversionService) ConvertBytes(ctx context.Context, req models.ByteRequest) (resp models.ByteResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "ConvertBytes",
		trace.WithAttributes(attribute.String("convkit.unit", req.Unit), attribute.Int("convkit.input_len", len(req.Value))))
	defer span.End()
	start := time.Now()
	defer func() { s.observe(span, kindBytes, start, resp.Valid, err) }()

	if err = ctx.Err(); err != nil {
		return models.ByteResponse{}, err
	}
	if err = s.checkInput(req.Value); err != nil {
		return models.ByteResponse{}, err
	}
	unit, err := byteconv.ParseUnit(req.Unit)
	if err != nil {
		return models.ByteResponse{}, err
	}

	key := unit.Name + "|" + req.Value
	if s.byteCache != nil {
		if cached, ok := s.byteCache.Get(key); ok {
			cacheHitsTotal.WithLabelValues(kindBytes).Inc()
			cached.Fields = slices.Clone(cached.Fields)
			return cached, nil
		}
	}

	session := byteconv.NewSession(byteconv.WithLadder(s.ladder))
	session.Set(unit.Exponent, req.Value)

	resp = models.ByteResponse{
		Input:  req.Value,
		Unit:   unit.Name,
		Valid:  session.Value().IsSet(),
		Fields: make([]models.UnitField, 0, len(s.ladder)),
	}
	for _, u := range s.ladder {
		resp.Fields = append(resp.Fields, models.UnitField{
			Unit:     u.Name,
			Exponent: u.Exponent,
			Text:     session.Get(u.Exponent),
		})
	}
	if resp.Valid {
		resp.Bits = session.Value().Text(10)
		resp.Best, _ = session.BestUnitExpression()
	} else if derr := session.Err(); derr != nil {
		resp.Error = derr.Error()
		s.logger.Debug("magnitude input did not resolve", logging.String("unit", unit.Name), logging.Err(derr))
	}

	if s.byteCache != nil {
		s.byteCache.Add(key, resp)
		resp.Fields = slices.Clone(resp.Fields)
	}
	return resp, nil
}

// Detect implements Service.
func (s *ConversionService) Detect(ctx context.Context, text string) (det models.Detection, err error) {
	ctx, span := s.tracer.Start(ctx, "Detect", trace.WithAttributes(attribute.Int("convkit.input_len", len(text))))
	defer span.End()
	start := time.Now()
	defer func() { s.observe(span, kindDetect, start, err == nil, err) }()

	if err = ctx.Err(); err != nil {
		return models.Detection{}, err
	}
	if err = s.checkInput(text); err != nil {
		return models.Detection{}, err
	}

	bd := baseconv.Detect(text)
	ud := byteconv.Detect(text)
	unit, ok := s.ladder.ByExponent(ud.Exponent)
	if !ok {
		unit, _ = byteconv.DefaultLadder().ByExponent(ud.Exponent)
	}
	span.SetAttributes(attribute.Int("convkit.base", bd.Base), attribute.String("convkit.unit", unit.Name))

	return models.Detection{
		Input: text,
		Base:  models.BaseDetection{Base: bd.Base, Prefix: bd.Prefix, Text: bd.Text},
		Bytes: models.UnitDetection{Unit: unit.Name, Exponent: ud.Exponent, Text: ud.Text},
	}, nil
}

// Units implements Service.
func (s *ConversionService) Units() []models.Unit {
	units := make([]models.Unit, len(s.ladder))
	for i, u := range s.ladder {
		units[i] = models.Unit{Name: u.Name, Exponent: u.Exponent}
	}
	return units
}
