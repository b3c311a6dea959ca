// Package apierror classifies failures returned by the ladder API so that
// retry decisions and user hints do not depend on scattered string checks.
package apierror
