// Package all registers every built-in rule. Import it for side effects.
package all

import (
	_ "github.com/curiousdev-oss/web-perf-toolkit/pkg/rules/angular"
	_ "github.com/curiousdev-oss/web-perf-toolkit/pkg/rules/bundle"
	_ "github.com/curiousdev-oss/web-perf-toolkit/pkg/rules/loading"
	_ "github.com/curiousdev-oss/web-perf-toolkit/pkg/rules/rendering"
	_ "github.com/curiousdev-oss/web-perf-toolkit/pkg/rules/runtime"
)
