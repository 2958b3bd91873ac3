// Package dashboard computes the monthly income and expense figures shown on
// the home screen: totals over every transaction in the month and the
// average per calendar day.
package dashboard
