package grpc

// proto.go defines the gRPC server interface derived from tally/ledger/v1/ledger.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/tallyhq/tally/api/gen/go/tally/ledger/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LedgerServiceServer is the server API for LedgerService.
// It mirrors the proto-generated interface from tally.ledger.v1.LedgerService.
type LedgerServiceServer interface {
	CreateInvoice(context.Context, *CreateInvoiceRequestMsg) (*CreateInvoiceResponseMsg, error)
	EditInvoice(context.Context, *EditInvoiceRequestMsg) (*EditInvoiceResponseMsg, error)
	DeleteInvoice(context.Context, *DeleteInvoiceRequestMsg) (*DeleteInvoiceResponseMsg, error)
	GetInvoice(context.Context, *GetInvoiceRequestMsg) (*GetInvoiceResponseMsg, error)
	ListInvoices(context.Context, *ListInvoicesRequestMsg) (*ListInvoicesResponseMsg, error)
	RecordPayment(context.Context, *RecordPaymentRequestMsg) (*RecordPaymentResponseMsg, error)
	EditPayment(context.Context, *EditPaymentRequestMsg) (*EditPaymentResponseMsg, error)
	DeletePayment(context.Context, *DeletePaymentRequestMsg) (*DeletePaymentResponseMsg, error)
	GetCustomer(context.Context, *GetCustomerRequestMsg) (*GetCustomerResponseMsg, error)
	mustEmbedUnimplementedLedgerServiceServer()
}

// UnimplementedLedgerServiceServer provides forward-compatible default implementations.
type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) CreateInvoice(context.Context, *CreateInvoiceRequestMsg) (*CreateInvoiceResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateInvoice not implemented")
}
func (UnimplementedLedgerServiceServer) EditInvoice(context.Context, *EditInvoiceRequestMsg) (*EditInvoiceResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EditInvoice not implemented")
}
func (UnimplementedLedgerServiceServer) DeleteInvoice(context.Context, *DeleteInvoiceRequestMsg) (*DeleteInvoiceResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteInvoice not implemented")
}
func (UnimplementedLedgerServiceServer) GetInvoice(context.Context, *GetInvoiceRequestMsg) (*GetInvoiceResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetInvoice not implemented")
}
func (UnimplementedLedgerServiceServer) ListInvoices(context.Context, *ListInvoicesRequestMsg) (*ListInvoicesResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListInvoices not implemented")
}
func (UnimplementedLedgerServiceServer) RecordPayment(context.Context, *RecordPaymentRequestMsg) (*RecordPaymentResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordPayment not implemented")
}
func (UnimplementedLedgerServiceServer) EditPayment(context.Context, *EditPaymentRequestMsg) (*EditPaymentResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EditPayment not implemented")
}
func (UnimplementedLedgerServiceServer) DeletePayment(context.Context, *DeletePaymentRequestMsg) (*DeletePaymentResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeletePayment not implemented")
}
func (UnimplementedLedgerServiceServer) GetCustomer(context.Context, *GetCustomerRequestMsg) (*GetCustomerResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCustomer not implemented")
}
func (UnimplementedLedgerServiceServer) mustEmbedUnimplementedLedgerServiceServer() {}

// RegisterLedgerServiceServer registers the LedgerServiceServer with the gRPC server.
func RegisterLedgerServiceServer(s *grpclib.Server, srv LedgerServiceServer) {
	s.RegisterService(&_LedgerService_serviceDesc, srv)
}

var _LedgerService_serviceDesc = grpclib.ServiceDesc{ //nolint:revive
	ServiceName: "tally.ledger.v1.LedgerService",
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateInvoice", Handler: _LedgerService_CreateInvoice_Handler},
		{MethodName: "EditInvoice", Handler: _LedgerService_EditInvoice_Handler},
		{MethodName: "DeleteInvoice", Handler: _LedgerService_DeleteInvoice_Handler},
		{MethodName: "GetInvoice", Handler: _LedgerService_GetInvoice_Handler},
		{MethodName: "ListInvoices", Handler: _LedgerService_ListInvoices_Handler},
		{MethodName: "RecordPayment", Handler: _LedgerService_RecordPayment_Handler},
		{MethodName: "EditPayment", Handler: _LedgerService_EditPayment_Handler},
		{MethodName: "DeletePayment", Handler: _LedgerService_DeletePayment_Handler},
		{MethodName: "GetCustomer", Handler: _LedgerService_GetCustomer_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _LedgerService_CreateInvoice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(CreateInvoiceRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).CreateInvoice(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/CreateInvoice",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).CreateInvoice(ctx, req.(*CreateInvoiceRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_EditInvoice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(EditInvoiceRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).EditInvoice(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/EditInvoice",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).EditInvoice(ctx, req.(*EditInvoiceRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_DeleteInvoice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(DeleteInvoiceRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).DeleteInvoice(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/DeleteInvoice",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).DeleteInvoice(ctx, req.(*DeleteInvoiceRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_GetInvoice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(GetInvoiceRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetInvoice(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/GetInvoice",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetInvoice(ctx, req.(*GetInvoiceRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_ListInvoices_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(ListInvoicesRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).ListInvoices(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/ListInvoices",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).ListInvoices(ctx, req.(*ListInvoicesRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_RecordPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(RecordPaymentRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).RecordPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/RecordPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).RecordPayment(ctx, req.(*RecordPaymentRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_EditPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(EditPaymentRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).EditPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/EditPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).EditPayment(ctx, req.(*EditPaymentRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_DeletePayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(DeletePaymentRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).DeletePayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/DeletePayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).DeletePayment(ctx, req.(*DeletePaymentRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_GetCustomer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(GetCustomerRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetCustomer(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/GetCustomer",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetCustomer(ctx, req.(*GetCustomerRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}
