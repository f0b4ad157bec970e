// Package cloudsigma provides the client side of the CloudSigma REST API used
// by the resource handler.
//
// # Architecture
//
// The [Client] interface names one method per REST operation the handler
// needs. Three implementations exist:
//
//   - RealClient: HTTP calls with basic auth. Every call goes through a single
//     invoke path that applies the injected retry policy.
//   - SimulatedClient: the dry-run strategy. No network, no delay, canned
//     results.
//   - MockClient: function fields for tests of the layers above.
//
// Provisioning code only sees [Client], so it does not know which strategy
// was injected.
//
// # Retry policy
//
// Each operation has an expected success status (202 for actions and
// clones, 200 for reads, 201 for server creation, 204 for deletes). Any other
// status, and any transport failure, is transient: the call is repeated
// after the policy interval until MaxAttempts (first attempt included) is
// reached. Running out of attempts yields an error that wraps both
// [ErrRetryBudgetExhausted] and the last [*APIError]; callers decide whether
// it is fatal.
//
// # Endpoints
//
//	POST   /libdrives/{id}/action/?do=clone     clone template drive   202
//	GET    /drives/{id}/                        drive status           200
//	DELETE /drives/{id}/                        delete drive           204
//	POST   /servers/                            create server          201
//	GET    /servers/{id}/                       server status, nics    200
//	DELETE /servers/{id}/?recurse=all_drives    delete server + drives 204
//	POST   /servers/{id}/action/?do=start|stop  lifecycle action       202
package cloudsigma
