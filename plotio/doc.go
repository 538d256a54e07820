// Package plotio writes fit results to image and HTML files.
//
// Lines, FitOverlay and Histogram render PNG figures for scans, fitted
// curves and posterior marginals. HTMLReport writes an interactive
// page with the fit and its residuals for sharing a result without a
// Go toolchain on the receiving end.
package plotio
