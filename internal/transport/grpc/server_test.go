package grpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	catalogerrors "github.com/abgdnv/gocommerce-catalog/internal/errors"
	"github.com/abgdnv/gocommerce-catalog/internal/service"
	"github.com/abgdnv/gocommerce-catalog/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type MockProductFinder struct {
	mock.Mock
}

func (m *MockProductFinder) FindByID(ctx context.Context, id int64) (*service.ProductDto, error) {
	args := m.Called(ctx, id)

	var product *service.ProductDto
	if args.Get(0) != nil {
		product = args.Get(0).(*service.ProductDto)
	}

	return product, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer_GetProduct(t *testing.T) {
	ctx := context.Background()
	description := "Hand tools"
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	testCases := []struct {
		name         string
		mockProduct  *service.ProductDto
		mockError    error
		expectedCode codes.Code
	}{
		{
			name: "success",
			mockProduct: &service.ProductDto{
				ID: 7, Name: "Hammer", Price: 25.5,
				Category:  &service.CategoryDto{ID: 2, Name: "Tools", Description: &description},
				CreatedAt: createdAt, UpdatedAt: createdAt,
			},
			expectedCode: codes.OK,
		},
		{
			name:         "not found",
			mockError:    catalogerrors.ProductNotFound(7),
			expectedCode: codes.NotFound,
		},
		{
			name:         "internal error",
			mockError:    errors.New("connection refused"),
			expectedCode: codes.Internal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockSvc := new(MockProductFinder)
			srv := NewServer(mockSvc, discardLogger())
			mockSvc.On("FindByID", mock.Anything, int64(7)).Return(tc.mockProduct, tc.mockError)

			// when
			res, err := srv.GetProduct(ctx, wrapperspb.Int64(7))

			// then
			if tc.expectedCode != codes.OK {
				require.Error(t, err)
				assert.Equal(t, tc.expectedCode, status.Code(err))
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			fields := res.GetFields()
			assert.Equal(t, float64(7), fields["id"].GetNumberValue())
			assert.Equal(t, "Hammer", fields["name"].GetStringValue())
			assert.Equal(t, 25.5, fields["price"].GetNumberValue())
			assert.Equal(t, "2025-01-02T03:04:05Z", fields["created_at"].GetStringValue())
			category := fields["category"].GetStructValue().GetFields()
			assert.Equal(t, "Tools", category["name"].GetStringValue())
			assert.Equal(t, "Hand tools", category["description"].GetStringValue())
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestServer_GetProduct_NonPositiveID(t *testing.T) {
	for _, id := range []int64{0, -1} {
		mockSvc := new(MockProductFinder)
		mockSvc.On("FindByID", mock.Anything, id).Return(nil, catalogerrors.ProductNotFound(id))
		srv := NewServer(mockSvc, discardLogger())

		_, err := srv.GetProduct(context.Background(), wrapperspb.Int64(id))

		assert.Equal(t, codes.NotFound, status.Code(err), "id %d", id)
		assert.Equal(t, fmt.Sprintf("Product not found with id: %d", id), status.Convert(err).Message())
		mockSvc.AssertExpectations(t)
	}
}

func TestServer_GetProduct_NullCategory(t *testing.T) {
	mockSvc := new(MockProductFinder)
	mockSvc.On("FindByID", mock.Anything, int64(3)).Return(&service.ProductDto{ID: 3, Name: "Loose nail"}, nil)
	srv := NewServer(mockSvc, discardLogger())

	res, err := srv.GetProduct(context.Background(), wrapperspb.Int64(3))

	require.NoError(t, err)
	_, isNull := res.GetFields()["category"].GetKind().(*structpb.Value_NullValue)
	assert.True(t, isNull)
}

func TestProductLookup_OverTheWire(t *testing.T) {
	// given
	mockSvc := new(MockProductFinder)
	mockSvc.On("FindByID", mock.Anything, int64(7)).Return(&service.ProductDto{ID: 7, Name: "Hammer", Price: 25.5}, nil)
	mockSvc.On("FindByID", mock.Anything, int64(8)).Return(nil, catalogerrors.ProductNotFound(8))

	lis := bufconn.Listen(1 << 20)
	grpcServer := server.NewGRPCServer(discardLogger(), false, func(s *grpc.Server) {
		RegisterProductLookupServer(s, NewServer(mockSvc, discardLogger()))
	})
	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := NewProductLookupClient(conn)

	// when
	found, err := client.GetProduct(context.Background(), 7)
	_, notFoundErr := client.GetProduct(context.Background(), 8)

	// then
	require.NoError(t, err)
	assert.Equal(t, "Hammer", found.GetFields()["name"].GetStringValue())
	st, ok := status.FromError(notFoundErr)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "Product not found with id: 8", st.Message())
}
