// ABOUTME: go:generate directives for gomock test doubles
// ABOUTME: Mocks live beside this file and are regenerated with go generate

// Package mocks provides gomock test doubles for the client's collaborator interfaces.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	gw := mocks.NewMockGateway(ctrl)
//	gw.EXPECT().SendResetCode(gomock.Any(), "a@b.co").Return("OTP sent", nil)
package mocks

// Generate mock for the recovery Gateway interface.
// This creates MockGateway with SendResetCode, VerifyResetCode, and ResetPassword.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=recovery_gateway_mock.go github.com/abhinavhh/hotel-booking-client/internal/recovery Gateway
