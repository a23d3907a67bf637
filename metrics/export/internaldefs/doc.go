// Package internaldefs declares the metric families both exporters publish: family
// names, help text, the label values each gateway counter is exported under, and the
// latency bucket bounds.
package internaldefs
