package internaldefs

import (
	authclient "github.com/solivaga/authclient"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   authclient.MetricID
	Name string
	Help string
}

// CounterDefs maps every client counter onto a stable instrument name.
var CounterDefs = []CounterDef{
	{ID: authclient.MetricLoginSuccess, Name: "authclient_login_success_total", Help: "Successful login calls."},
	{ID: authclient.MetricLoginFailure, Name: "authclient_login_failure_total", Help: "Failed login calls."},
	{ID: authclient.MetricRegisterSuccess, Name: "authclient_register_success_total", Help: "Successful registrations."},
	{ID: authclient.MetricRegisterFailure, Name: "authclient_register_failure_total", Help: "Failed registrations."},
	{ID: authclient.MetricRefreshSuccess, Name: "authclient_refresh_success_total", Help: "Successful token refreshes."},
	{ID: authclient.MetricRefreshFailure, Name: "authclient_refresh_failure_total", Help: "Failed token refreshes."},
	{ID: authclient.MetricRefreshShared, Name: "authclient_refresh_shared_total", Help: "Refresh attempts coalesced into an in-flight exchange."},
	{ID: authclient.MetricRetrySuccess, Name: "authclient_retry_success_total", Help: "Requests that succeeded after a refresh-and-retry."},
	{ID: authclient.MetricRetryFailure, Name: "authclient_retry_failure_total", Help: "Requests that failed again after a refresh-and-retry."},
	{ID: authclient.MetricSessionExpired, Name: "authclient_session_expired_total", Help: "Forced logouts after unrecoverable refresh failures."},
	{ID: authclient.MetricLogout, Name: "authclient_logout_total", Help: "Logout operations."},
	{ID: authclient.MetricRequestError, Name: "authclient_request_error_total", Help: "Requests rejected by the server outside the refresh protocol."},
	{ID: authclient.MetricNetworkError, Name: "authclient_network_error_total", Help: "Requests that produced no response."},
}
