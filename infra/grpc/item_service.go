package grpc

import (
	"catalog/app/item"
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"errors"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ItemServiceName = "catalog.item.v1.ItemService"

// ItemServiceHandler is the server side of catalog.item.v1.ItemService. Its
// messages are protobuf well-known types, so no generated code is needed.
type ItemServiceHandler interface {
	CreateItem(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	ListItems(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	UpdateItem(context.Context, *structpb.Struct) (*structpb.Value, error)
	DeleteItem(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
}

type ItemServiceServer struct {
	createItem *item.CreateItemHandler
	getItems   *item.GetItemsHandler
	updateItem *item.UpdateItemHandler
	deleteItem *item.DeleteItemHandler
}

func NewItemServiceServer(repository item.Repository, publisher events.Publisher) *ItemServiceServer {
	return &ItemServiceServer{
		createItem: item.NewCreateItemHandler(repository, publisher),
		getItems:   item.NewGetItemsHandler(repository),
		updateItem: item.NewUpdateItemHandler(repository, publisher),
		deleteItem: item.NewDeleteItemHandler(repository, publisher),
	}
}

func RegisterItemServiceServer(s grpc.ServiceRegistrar, srv ItemServiceHandler) {
	s.RegisterService(&itemServiceDesc, srv)
}

func (s *ItemServiceServer) CreateItem(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	res, err := s.createItem.Handle(ctx, &item.CreateItemRequest{
		Name:        optionalStringField(req, "name"),
		Description: optionalStringField(req, "description"),
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return wrapperspb.String(res.InsertedID), nil
}

func (s *ItemServiceServer) ListItems(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	items, err := s.getItems.Handle(ctx, &item.GetItemsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	values := make([]*structpb.Value, 0, len(items))
	for _, i := range items {
		values = append(values, structpb.NewStructValue(itemToStruct(i)))
	}

	return &structpb.ListValue{Values: values}, nil
}

func (s *ItemServiceServer) UpdateItem(ctx context.Context, req *structpb.Struct) (*structpb.Value, error) {
	updated, err := s.updateItem.Handle(ctx, &item.UpdateItemRequest{
		ItemID:      stringField(req, "id"),
		Name:        optionalStringField(req, "name"),
		Description: optionalStringField(req, "description"),
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	if updated == nil {
		return structpb.NewNullValue(), nil
	}

	return structpb.NewStructValue(itemToStruct(*updated)), nil
}

func (s *ItemServiceServer) DeleteItem(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	deleted, err := s.deleteItem.Handle(ctx, &item.DeleteItemRequest{ItemID: req.GetValue()})
	if err != nil {
		return nil, s.mapError(err)
	}

	return wrapperspb.Bool(deleted), nil
}

func (s *ItemServiceServer) mapError(err error) error {
	if errors.Is(err, domain.ErrInvalidIdentifier) {
		return status.Error(codes.InvalidArgument, item.InvalidIdentifierMessage)
	}

	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		if httpErr.Status == http.StatusBadRequest {
			return status.Error(codes.InvalidArgument, httpErr.Message)
		}
		return status.Error(codes.Internal, httpErr.Message)
	}
	return status.Error(codes.Internal, "internal error")
}

func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

// optionalStringField is nil when key is absent or not a string.
func optionalStringField(s *structpb.Struct, key string) *string {
	v, ok := s.GetFields()[key].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil
	}
	return &v.StringValue
}

func itemToStruct(i domain.Item) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"name":        structpb.NewStringValue(i.Name),
		"description": structpb.NewStringValue(i.Description),
	}
	if i.ID != "" {
		fields["id"] = structpb.NewStringValue(i.ID)
	}
	return &structpb.Struct{Fields: fields}
}

func _ItemService_CreateItem_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ItemServiceHandler).CreateItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ItemServiceName + "/CreateItem",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ItemServiceHandler).CreateItem(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _ItemService_ListItems_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ItemServiceHandler).ListItems(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ItemServiceName + "/ListItems",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ItemServiceHandler).ListItems(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _ItemService_UpdateItem_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ItemServiceHandler).UpdateItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ItemServiceName + "/UpdateItem",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ItemServiceHandler).UpdateItem(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _ItemService_DeleteItem_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ItemServiceHandler).DeleteItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ItemServiceName + "/DeleteItem",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ItemServiceHandler).DeleteItem(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var itemServiceDesc = grpc.ServiceDesc{
	ServiceName: ItemServiceName,
	HandlerType: (*ItemServiceHandler)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateItem", Handler: _ItemService_CreateItem_Handler},
		{MethodName: "ListItems", Handler: _ItemService_ListItems_Handler},
		{MethodName: "UpdateItem", Handler: _ItemService_UpdateItem_Handler},
		{MethodName: "DeleteItem", Handler: _ItemService_DeleteItem_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/item/v1/item_service.proto",
}
