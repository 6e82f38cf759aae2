package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName       = "catalog.v1.ProductLookup"
	GetProductMethod  = "/" + ServiceName + "/GetProduct"
	lookupServiceFile = "catalog/v1/lookup.proto"
)

// ProductLookupServer is the server API for the ProductLookup service.
type ProductLookupServer interface {
	GetProduct(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error)
}

// ProductLookupServiceDesc describes ProductLookup using protobuf well-known types,
// so no generated stubs are needed.
var ProductLookupServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductLookupServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProduct",
			Handler:    getProductHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: lookupServiceFile,
}

func getProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductLookupServer).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetProductMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductLookupServer).GetProduct(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterProductLookupServer registers srv with s.
func RegisterProductLookupServer(s grpc.ServiceRegistrar, srv ProductLookupServer) {
	s.RegisterService(&ProductLookupServiceDesc, srv)
}

// ProductLookupClient calls ProductLookup over conn.
type ProductLookupClient struct {
	conn grpc.ClientConnInterface
}

func NewProductLookupClient(conn grpc.ClientConnInterface) *ProductLookupClient {
	return &ProductLookupClient{conn: conn}
}

func (c *ProductLookupClient) GetProduct(ctx context.Context, id int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, GetProductMethod, wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
