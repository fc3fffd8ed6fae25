package sim

// Predefined demo routes through the Gulf of Thailand and the South
// China Sea. Positions and AIS statuses are fixed; telemetry is
// randomized at generation time.

var fishingRoute = []waypoint{
	{13.065024737368468, 100.88090895915349, "No AIS", "History"},
	{13.000274575678905, 100.63231885460398, "AIS", "History"},
	{12.816402143655235, 100.5121559365818, "AIS", "History"},
	{12.571080679019152, 100.50425939609092, "AIS", "History"},
	{12.324903411797516, 100.50218669608854, "AIS", "History"},
	{12.079209540435095, 100.53994443783212, "AIS", "History"},
	{11.838564979506009, 100.61532618471438, "AIS", "History"},
	{11.595921651696361, 100.6995829893499, "AIS", "History"},
	{11.357115194893014, 100.77116570550932, "AIS", "History"},
	{11.113960749210412, 100.83891824077482, "AIS", "History"},
	{10.8673633245079, 100.89517763508664, "AIS", "History"},
	{10.624637775543771, 100.95295236414975, "AIS", "History"},
	{10.386668619906004, 101.00788406433297, "AIS", "History"},
	{10.153428941718284, 101.08527123008167, "AIS", "History"},
	{9.919501284560454, 101.14142595014616, "AIS", "History"},
	{9.686552954112068, 101.249610777446, "AIS", "History"},
	{9.453197432694445, 101.35121818466139, "AIS", "History"},
	{9.241517555306238, 101.47854801642463, "AIS", "History"},
	{9.044925821306041, 101.63235660176852, "AIS", "History"},
	{8.871288743941548, 101.79989808724271, "AIS", "History"},
	{8.708429323113009, 101.98117253242822, "No AIS", "History"},
	{8.280283102901367, 102.31076272747136, "AIS", "History"},
	{7.908630578369372, 102.68979130883962, "AIS", "History"},
	{7.699107852709557, 103.1580781209581, "AIS", "History"},
	{7.656917520404703, 103.67168887831085, "AIS", "History"},
	{7.670527763959799, 104.18392641721015, "AIS", "History"},
	{7.686859486142251, 104.70028382250284, "AIS", "History"},
	{7.700468772482115, 105.21664126993089, "AIS", "History"},
	{7.813408916041465, 105.72063906987891, "AIS", "History"},
	{8.031038285117381, 106.19305120263223, "AIS", "History"},
	{8.26485976562018, 106.64349063074788, "AIS", "History"},
	{8.55286733034221, 107.07745058407386, "AIS", "History"},
	{8.862368303516716, 107.48943789229526, "AIS", "History"},
	{9.171608819247808, 107.91790468128688, "AIS", "History"},
	{9.46432529073659, 108.32989200636246, "AIS", "History"},
	{9.753328313719159, 108.76203689205124, "AIS", "History"},
	{9.991188185339132, 109.22168277370157, "AIS", "History"},
	{10.277783068609828, 109.64465641521295, "AIS", "History"},
	{10.585717713716969, 110.06213688287559, "AIS", "History"},
	{10.91426743488117, 110.46481325514617, "AIS", "History"},
	{11.219539201383867, 110.88169816961447, "AIS", "History"},
	{11.583010239082498, 111.25248684400674, "AIS", "Current"},
	{11.932573485988403, 111.63151512843621, "AIS", "Future"},
	{12.303241453667606, 111.994063924348039, "AIS", "Future"},
	{12.662152122618157, 112.372582797518023, "AIS", "Future"},
	{13.021062791568709, 112.751101670687994, "AIS", "Future"},
}

var cargoRoute = []waypoint{
	{13.079972, 100.881889, "AIS", "History"},
	{12.97356780985889, 100.54796015066181, "AIS", "History"},
	{12.627365165638585, 100.5183255489848, "AIS", "History"},
	{12.294899757342149, 100.63181824151971, "AIS", "History"},
	{11.959388784241828, 100.73584594897854, "AIS", "History"},
	{11.624033620715302, 100.8408536314547, "AIS", "History"},
	{11.290293043547429, 100.95037637682013, "AIS", "History"},
	{10.950410139667289, 101.04147669607556, "AIS", "History"},
	{10.61370150020552, 101.14027687780214, "AIS", "History"},
	{10.276384320786649, 101.23959290101489, "AIS", "History"},
	{9.945337945778036, 101.35912969606814, "AIS", "History"},
	{9.632287811383744, 101.51504149771144, "AIS", "History"},
	{9.316768552457347, 101.66819373134327, "AIS", "History"},
	{9.00675534249025, 101.83129364636173, "AIS", "History"},
	{8.708980846830958, 102.01497576722561, "No AIS", "History"},
	{8.236609309971005, 102.5366310292528, "AIS", "History"},
	{7.835845713410455, 103.11140299233783, "AIS", "History"},
	{7.457628329258875, 103.70157653136624, "AIS", "History"},
	{7.100633868023333, 104.30462496420537, "AIS", "History"},
	{7.032230328649701, 105.00267803367264, "AIS", "History"},
	{7.235773141144987, 105.67856270607956, "AIS", "History"},
	{7.605449764946292, 106.28065290350045, "AIS", "History"},
	{7.979300897444996, 106.87842685916733, "AIS", "History"},
	{8.36958795786419, 107.46668599882994, "AIS", "History"},
	{8.779606461892143, 108.0425362884556, "AIS", "History"},
	{9.196068638831276, 108.61429142368263, "AIS", "History"},
	{9.609274284007839, 109.1880940674801, "AIS", "History"},
	{10.004053265017374, 109.77607205868364, "AIS", "History"},
	{10.48668008138099, 110.2909514532092, "AIS", "History"},
	{10.945439335635449, 110.83386503799089, "AIS", "History"},
	{11.424433821583277, 111.3552892345447, "AIS", "History"},
	{11.906593207781603, 111.86725860015174, "AIS", "History"},
	{12.378587261222078, 112.38653028623536, "AIS", "History"},
	{12.880028572978512, 112.89285140752781, "AIS", "History"},
	{13.346365161153159, 113.42666419107641, "AIS", "History"},
	{13.843548982024831, 113.90005561847288, "AIS", "History"},
	{14.393700198895079, 114.35816488660092, "AIS", "History"},
	{14.98008563349693, 114.75870448890798, "AIS", "History"},
	{15.566967705180106, 115.16245207707092, "AIS", "History"},
	{16.166689259314516, 115.54148037473821, "AIS", "History"},
	{16.797148432659423, 115.85021334874027, "AIS", "Current"},
	{17.430319477341907, 116.15733958244417, "AIS", "Future"},
	{18.05449729960005, 116.4930219751414, "AIS", "Future"},
	{18.69907628485336, 116.78243874920335, "AIS", "Future"},
	{19.344809349959917, 117.07381239505587, "AIS", "Future"},
}
