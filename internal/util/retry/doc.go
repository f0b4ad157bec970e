// Package retry provides fixed-interval retry logic for transient failures.
//
// A [Policy] carries the interval between attempts and the attempt budget.
// [Do] retries an operation under a policy, and [Policy.Wait] is the sleep
// that polling loops use between observations. Both honour context
// cancellation.
package retry
