package config

// 布局配置常量
// 本文件定义了窗口尺寸和聚光灯卡片、祝福列表的位置参数
// 所有坐标使用"逻辑坐标系"（与设备像素比无关），渲染层负责乘以缩放因子

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 是默认窗口的逻辑宽度
	GameWindowWidth = 960

	// GameWindowHeight 是默认窗口的逻辑高度
	GameWindowHeight = 640

	// WindowTitle 窗口标题
	WindowTitle = "Rising - Janmashtami Wishes"
)

// Spotlight Card Configuration (聚光灯卡片配置)
const (
	// SpotlightCardWidthRatio 卡片宽度占窗口宽度的比例
	SpotlightCardWidthRatio = 0.6

	// SpotlightCardHeight 卡片高度
	SpotlightCardHeight = 170.0

	// SpotlightCardTopRatio 卡片顶部相对窗口高度的比例
	SpotlightCardTopRatio = 0.18

	// SpotlightNameFontSize 名字字号
	SpotlightNameFontSize = 30.0

	// SpotlightTextFontSize 祝福文本字号
	SpotlightTextFontSize = 18.0

	// SpotlightPadding 卡片内边距
	SpotlightPadding = 20.0

	// SpotlightLineSpacing 文本行距
	SpotlightLineSpacing = 24.0
)

// Wish List Configuration (祝福列表配置)
const (
	// WishListTopRatio 列表顶部相对窗口高度的比例
	WishListTopRatio = 0.52

	// WishCardHeight 列表中每张卡片的高度
	WishCardHeight = 40.0

	// WishCardGap 卡片间距
	WishCardGap = 6.0

	// WishListMaxVisible 列表最多显示的卡片数
	WishListMaxVisible = 6

	// WishListFontSize 列表字号
	WishListFontSize = 14.0
)

// SpotlightCardRect 返回聚光灯卡片在指定逻辑尺寸下的矩形
// 返回值：x, y, width, height
func SpotlightCardRect(screenW, screenH float64) (float64, float64, float64, float64) {
	w := screenW * SpotlightCardWidthRatio
	x := (screenW - w) / 2
	y := screenH * SpotlightCardTopRatio
	return x, y, w, SpotlightCardHeight
}

// WishCardRect 返回列表中第 slot 张卡片的矩形（slot 从 0 开始）
// 返回值：x, y, width, height
func WishCardRect(screenW, screenH float64, slot int) (float64, float64, float64, float64) {
	w := screenW * SpotlightCardWidthRatio
	x := (screenW - w) / 2
	y := screenH*WishListTopRatio + float64(slot)*(WishCardHeight+WishCardGap)
	return x, y, w, WishCardHeight
}
