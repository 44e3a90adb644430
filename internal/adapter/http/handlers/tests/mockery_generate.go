package tests

// Mock generation for handler tests.
//
// Usage:
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name PostService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename post_service_mock.go --with-expecter
//go:generate mockery --name ApplicantService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename applicant_service_mock.go --with-expecter
//go:generate mockery --name LifecycleService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename lifecycle_service_mock.go --with-expecter
//go:generate mockery --name PhaseService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename phase_service_mock.go --with-expecter
