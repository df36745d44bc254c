// Package kernel provides core domain primitives shared by the dispatch
// aggregates: the normalized Phone identity value object and the business
// day arithmetic that aligns "today" with late-night operating hours.
package kernel
