package propagation

// regressionRow is one (intercept, slope, stdDev) triple feeding the
// log-linear sampler used by the nine-ray model.
type regressionRow struct {
	intercept float64
	slope     float64
	stdDev    float64
}

// onProbabilityTable, durationTable and excessDelayTable are the
// published near-urban measurement regressions for rays 0..6 of the
// suburban model. Embedded verbatim; do not "clean up" the trailing
// zero std-devs, they are how the reference data models rays that
// never exhibited variance in the survey.
var onProbabilityTable = [7]regressionRow{
	{0.4480, -0.1457, 0.906256034},
	{-2.3302, -0.0630, 0.844452485},
	{-2.3578, -0.1367, 0.88391176},
	{-2.0716, -0.2233, 0.845517593},
	{-1.9377, -0.2502, 0.500699511},
	{-4.1835, 0.3570, 0.0},
	{-6.2697, 0.9563, 0.0},
}

var durationTable = [7]regressionRow{
	{0.5513, -0.0450, 0.51951901},
	{0.2883, 0.0037, 0.46357308},
	{0.1246, -0.0212, 0.57096410},
	{0.0022, 0.0036, 0.66873014},
	{0.5779, 0.1470, 0.37523326},
	{2.1444, 0.7495, 0.0},
	{1.5143, 0.5968, 0.0},
}

var excessDelayTable = [7]regressionRow{
	{2.3210, -0.0047, 0.34481879},
	{2.4248, 0.0029, 0.35902646},
	{2.4914, 0.0186, 0.31432467},
	{2.5198, 0.0253, 0.35482390},
	{2.6964, 0.0168, 0.08888194},
	{2.7381, 0.0281, 0.0},
	{2.9929, -0.0343, 0.0},
}

// distanceBreakpoint is the ground distance (metres) above which the
// regressions' slope term engages.
const distanceBreakpoint = 19000.0
