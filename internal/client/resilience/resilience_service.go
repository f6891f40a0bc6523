package resilience

import (
	"context"

	"go.uber.org/zap"

	"davazen/pkg/logger"
)

// LogExecuting - сообщение перед защищенным вызовом.
const LogExecuting = "executing operation with resilience"

// ServiceResilience обеспечивает отказоустойчивость вызовов удаленного сервиса:
// повторы внутри Circuit Breaker.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает новую обертку отказоустойчивости для сервиса.
func NewServiceResilience(serviceName string, cbConfig CircuitBreakerConfig, retryConfig RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cbConfig),
		retry:          NewRetry(serviceName, retryConfig),
	}
}

// ExecuteWithResilience выполняет операцию с отказоустойчивостью.
func (r *ServiceResilience) ExecuteWithResilience(
	ctx context.Context,
	operationName string,
	operation func() error,
) error {
	logger.Log(ctx).With(
		zap.String("service", r.serviceName),
		zap.String("operation", operationName),
	).Debug(ctx, LogExecuting)

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// Execute выполняет операцию с результатом под защитой ServiceResilience.
func Execute[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	var result T
	err := r.ExecuteWithResilience(ctx, operationName, func() error {
		var err error
		result, err = operation()
		return err
	})
	return result, err
}

// State возвращает состояние Circuit Breaker.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.GetState()
}
