// Package grpc serves read-only product lookups over gRPC.
package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	catalogerrors "github.com/abgdnv/gocommerce-catalog/internal/errors"
	"github.com/abgdnv/gocommerce-catalog/internal/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ProductFinder is the part of the product service the lookup needs.
type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (*service.ProductDto, error)
}

type Server struct {
	service ProductFinder
	logger  *slog.Logger
}

var _ ProductLookupServer = (*Server)(nil)

func NewServer(service ProductFinder, logger *slog.Logger) *Server {
	return &Server{service: service, logger: logger.With("component", "grpc")}
}

func (s *Server) GetProduct(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	id := req.GetValue()
	s.logger.DebugContext(ctx, "received grpc request GetProduct", "ID", id)

	found, err := s.service.FindByID(ctx, id)
	if err != nil {
		var notFound *catalogerrors.NotFoundError
		if errors.As(err, &notFound) {
			return nil, status.Error(codes.NotFound, notFound.Error())
		}
		s.logger.ErrorContext(ctx, "service.FindByID failed", "ID", id, "error", err)
		return nil, status.Error(codes.Internal, "internal server error")
	}

	res, err := structpb.NewStruct(toFields(found))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode product", "ID", id, "error", err)
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return res, nil
}

// toFields flattens a product into values structpb accepts. Nil pointers become null.
func toFields(p *service.ProductDto) map[string]any {
	var category any
	if p.Category != nil {
		category = map[string]any{
			"id":          p.Category.ID,
			"name":        p.Category.Name,
			"description": stringOrNil(p.Category.Description),
		}
	}
	return map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"price":      p.Price,
		"category":   category,
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": p.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func stringOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
