package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"panguard/internal/validation"
)

// ValidateRequestSuite tests request validation and normalization for the
// card endpoints.
type ValidateRequestSuite struct {
	suite.Suite
}

func TestValidateRequestSuite(t *testing.T) {
	suite.Run(t, new(ValidateRequestSuite))
}

func (s *ValidateRequestSuite) TestValidateCardRequest() {
	s.Run("valid request passes", func() {
		req := &ValidateCardRequest{Scheme: "visa", Number: "4111111111111111"}
		s.NoError(req.Validate())
	})

	s.Run("scheme is trimmed", func() {
		req := &ValidateCardRequest{Scheme: "  visa  ", Number: "4111111111111111"}
		s.Require().NoError(req.Validate())
		s.Equal("visa", req.Scheme)
	})

	s.Run("missing scheme rejected", func() {
		req := &ValidateCardRequest{Number: "4111111111111111"}
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "scheme is required")
	})

	s.Run("empty number passes through to the engine", func() {
		req := &ValidateCardRequest{Scheme: "visa"}
		s.NoError(req.Validate())
	})

	s.Run("number with separators within bounds passes", func() {
		req := &ValidateCardRequest{Scheme: "visa", Number: "4111 1111 1111 1111"}
		s.NoError(req.Validate())
	})

	s.Run("oversized number rejected", func() {
		req := &ValidateCardRequest{Scheme: "visa", Number: strings.Repeat("4", maxRawNumberLength+1)}
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "at most")
	})
}

func (s *ValidateRequestSuite) TestValidateBatchRequest() {
	card := func(scheme string) BatchCard {
		return BatchCard{Scheme: scheme, Number: "4111111111111111"}
	}

	s.Run("valid batch passes", func() {
		req := &ValidateBatchRequest{Cards: []BatchCard{card("visa"), card("amex")}}
		s.NoError(req.Validate())
	})

	s.Run("empty batch rejected", func() {
		req := &ValidateBatchRequest{}
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "at least one entry")
	})

	s.Run("max batch size allowed", func() {
		cards := make([]BatchCard, validation.MaxBatchSize)
		for i := range cards {
			cards[i] = card("visa")
		}
		req := &ValidateBatchRequest{Cards: cards}
		s.NoError(req.Validate())
	})

	s.Run("entry missing scheme rejected with its index", func() {
		req := &ValidateBatchRequest{Cards: []BatchCard{card("visa"), {Number: "4111111111111111"}}}
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "cards[1].scheme is required")
	})

	s.Run("entry schemes are trimmed", func() {
		req := &ValidateBatchRequest{Cards: []BatchCard{card(" visa ")}}
		s.Require().NoError(req.Validate())
		s.Equal("visa", req.Cards[0].Scheme)
	})

	s.Run("items preserve order and fields", func() {
		req := &ValidateBatchRequest{Cards: []BatchCard{
			{Scheme: "visa", Number: "4111111111111111"},
			{Scheme: "mir", Number: "2200000000000004"},
		}}
		s.Require().NoError(req.Validate())

		items := req.Items()
		s.Require().Len(items, 2)
		s.Equal(validation.BatchItem{Scheme: "visa", Number: "4111111111111111"}, items[0])
		s.Equal(validation.BatchItem{Scheme: "mir", Number: "2200000000000004"}, items[1])
	})
}
