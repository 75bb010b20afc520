package props

import "github.com/yacobolo/sysgen/internal/theme"

var (
	baselineValues    = []string{"baseline"}
	distributeValues  = []string{"space-around", "space-between", "space-evenly", "stretch"}
	intrinsicKeywords = []string{"fill", "fit-content", "max-content", "min-content"}
	positionValues    = []string{"center", "end", "flex-end", "flex-start", "start"}
	overflowValues    = []string{"auto", "clip", "hidden", "scroll", "visible"}
	gridTrackValues   = []string{"auto", "min-content", "max-content"}
)

func join(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

var catalog = []Prop{
	// borders
	{Name: "border", Category: CategoryBorders, Scale: "borders"},
	{Name: "borderTop", Category: CategoryBorders, Scale: "borders"},
	{Name: "borderRight", Category: CategoryBorders, Scale: "borders"},
	{Name: "borderBottom", Category: CategoryBorders, Scale: "borders"},
	{Name: "borderLeft", Category: CategoryBorders, Scale: "borders"},
	{Name: "borderColor", Category: CategoryBorders, Scale: "colors"},
	{Name: "borderTopColor", Category: CategoryBorders, Scale: "colors"},
	{Name: "borderRightColor", Category: CategoryBorders, Scale: "colors"},
	{Name: "borderBottomColor", Category: CategoryBorders, Scale: "colors"},
	{Name: "borderLeftColor", Category: CategoryBorders, Scale: "colors"},
	{Name: "borderStyle", Category: CategoryBorders, Scale: "borderStyles"},
	{Name: "borderStyleTop", Category: CategoryBorders, Scale: "borderStyles", CSSProps: []string{"border-top-style"}},
	{Name: "borderStyleRight", Category: CategoryBorders, Scale: "borderStyles", CSSProps: []string{"border-right-style"}},
	{Name: "borderStyleBottom", Category: CategoryBorders, Scale: "borderStyles", CSSProps: []string{"border-bottom-style"}},
	{Name: "borderStyleLeft", Category: CategoryBorders, Scale: "borderStyles", CSSProps: []string{"border-left-style"}},
	{Name: "borderWidth", Category: CategoryBorders, Scale: "borderWidths"},
	{Name: "borderWidthTop", Category: CategoryBorders, Scale: "borderWidths", CSSProps: []string{"border-top-width"}},
	{Name: "borderWidthRight", Category: CategoryBorders, Scale: "borderWidths", CSSProps: []string{"border-right-width"}},
	{Name: "borderWidthBottom", Category: CategoryBorders, Scale: "borderWidths", CSSProps: []string{"border-bottom-width"}},
	{Name: "borderWidthLeft", Category: CategoryBorders, Scale: "borderWidths", CSSProps: []string{"border-left-width"}},

	// colors
	{Name: "backgroundColor", Alias: "bgColor", Category: CategoryColors, Scale: "colors"},
	{Name: "color", Category: CategoryColors, Scale: "colors"},

	// flex
	{Name: "alignItems", Alias: "align", Category: CategoryFlex, Values: join(baselineValues, positionValues, []string{"normal"})},
	{Name: "alignSelf", Category: CategoryFlex, Values: join(baselineValues, positionValues,
		[]string{"auto", "left", "normal", "right", "self-start", "self-end", "stretch"})},
	{Name: "alignContent", Category: CategoryFlex, Values: join(baselineValues, distributeValues, positionValues, []string{"normal"})},
	{Name: "flexBasis", Alias: "basis", Category: CategoryFlex, Scale: "sizes", Values: join(intrinsicKeywords, []string{"auto", "content"})},
	{Name: "flexDirection", Alias: "direction", Category: CategoryFlex, Values: []string{"column", "column-reverse", "row", "row-reverse"}},
	{Name: "flexGrow", Alias: "grow", Category: CategoryFlex, Scale: "flexGrow", Transform: theme.TransformString},
	{Name: "flexShrink", Alias: "shrink", Category: CategoryFlex, Scale: "flexShrink", Transform: theme.TransformString},
	{Name: "justifyContent", Alias: "justify", Category: CategoryFlex, Values: join(distributeValues, positionValues, []string{"left", "normal", "right"})},
	{Name: "justifyItems", Category: CategoryFlex, Values: join(baselineValues, positionValues,
		[]string{"auto", "left", "normal", "right", "self-start", "self-end"})},
	{Name: "justifySelf", Category: CategoryFlex, Values: join(baselineValues, positionValues,
		[]string{"auto", "left", "normal", "right", "self-start", "self-end", "stretch"})},
	{Name: "order", Category: CategoryFlex, Scale: "order", Transform: theme.TransformString},

	// grid
	{Name: "gridAutoColumns", Category: CategoryGrid, Values: gridTrackValues},
	{Name: "gridAutoFlow", Category: CategoryGrid, Values: []string{"column", "column dense", "dense", "row", "row dense"}},
	{Name: "gridAutoRows", Category: CategoryGrid, Values: gridTrackValues},
	{Name: "gridColumn", Category: CategoryGrid, Scale: "columns", Transform: theme.TransformString},
	{Name: "gridColumnStart", Alias: "colStart", Category: CategoryGrid, Scale: "columns", Transform: theme.TransformString},
	{Name: "gridColumnEnd", Alias: "colEnd", Category: CategoryGrid, Scale: "columns", Transform: theme.TransformString},
	{Name: "gridRow", Category: CategoryGrid, Scale: "rows", Transform: theme.TransformString},
	{
		Name:          "gridColumnSpan",
		Alias:         "colSpan",
		Category:      CategoryGrid,
		Scale:         "columns",
		CSSProps:      []string{"grid-column-end"},
		ValueTemplate: "span ${value}",
		Transform:     theme.TransformString,
	},

	// layout
	{Name: "columnCount", Category: CategoryLayout, Scale: "columns", Transform: theme.TransformString},
	{Name: "columnWidth", Category: CategoryLayout, Scale: "space"},
	{Name: "columnGap", Category: CategoryLayout, Scale: "space"},
	{Name: "display", Alias: "d", Category: CategoryLayout, Values: []string{
		"block", "contents", "flex", "grid", "inline-block", "inline-flex", "inline-grid", "inline", "none",
	}},
	{Name: "gap", Category: CategoryLayout, Scale: "space"},
	{Name: "overflow", Category: CategoryLayout, Values: overflowValues},
	{Name: "overflowX", Category: CategoryLayout, Values: overflowValues},
	{Name: "overflowY", Category: CategoryLayout, Values: overflowValues},
	{Name: "rowGap", Category: CategoryLayout, Scale: "space"},
	{Name: "verticalAlign", Category: CategoryLayout, Values: []string{"baseline", "sub", "super", "text-top", "text-bottom", "middle"}},

	// position
	{Name: "position", Alias: "pos", Category: CategoryPosition, Values: []string{"absolute", "fixed", "relative", "static", "sticky"}},
	{Name: "top", Category: CategoryPosition, Scale: "space"},
	{Name: "right", Category: CategoryPosition, Scale: "space"},
	{Name: "bottom", Category: CategoryPosition, Scale: "space"},
	{Name: "left", Category: CategoryPosition, Scale: "space"},
	{Name: "zIndex", Category: CategoryPosition, Scale: "zIndices", Transform: theme.TransformString},

	// radii
	{Name: "borderRadius", Category: CategoryRadii, Scale: "radii"},
	{Name: "borderBottomLeftRadius", Category: CategoryRadii, Scale: "radii"},
	{Name: "borderBottomRightRadius", Category: CategoryRadii, Scale: "radii"},
	{Name: "borderTopLeftRadius", Category: CategoryRadii, Scale: "radii"},
	{Name: "borderTopRightRadius", Category: CategoryRadii, Scale: "radii"},
	{Name: "borderBottomRadius", Category: CategoryRadii, Scale: "radii", CSSProps: []string{"border-bottom-left-radius", "border-bottom-right-radius"}},
	{Name: "borderLeftRadius", Category: CategoryRadii, Scale: "radii", CSSProps: []string{"border-bottom-left-radius", "border-top-left-radius"}},
	{Name: "borderRightRadius", Category: CategoryRadii, Scale: "radii", CSSProps: []string{"border-bottom-right-radius", "border-top-right-radius"}},
	{Name: "borderTopRadius", Category: CategoryRadii, Scale: "radii", CSSProps: []string{"border-top-left-radius", "border-top-right-radius"}},

	// sizes
	{Name: "width", Alias: "w", Category: CategorySizes, Scale: "sizes"},
	{Name: "height", Alias: "h", Category: CategorySizes, Scale: "sizes"},
	{Name: "minWidth", Alias: "minW", Category: CategorySizes, Scale: "sizes"},
	{Name: "maxWidth", Alias: "maxW", Category: CategorySizes, Scale: "sizes"},
	{Name: "minHeight", Alias: "minH", Category: CategorySizes, Scale: "sizes"},
	{Name: "maxHeight", Alias: "maxH", Category: CategorySizes, Scale: "sizes"},

	// space
	{Name: "margin", Alias: "m", Category: CategorySpace, Scale: "space"},
	{Name: "marginTop", Alias: "mt", Category: CategorySpace, Scale: "space"},
	{Name: "marginRight", Alias: "mr", Category: CategorySpace, Scale: "space"},
	{Name: "marginBottom", Alias: "mb", Category: CategorySpace, Scale: "space"},
	{Name: "marginLeft", Alias: "ml", Category: CategorySpace, Scale: "space"},
	{Name: "padding", Alias: "p", Category: CategorySpace, Scale: "space"},
	{Name: "paddingTop", Alias: "pt", Category: CategorySpace, Scale: "space"},
	{Name: "paddingRight", Alias: "pr", Category: CategorySpace, Scale: "space"},
	{Name: "paddingBottom", Alias: "pb", Category: CategorySpace, Scale: "space"},
	{Name: "paddingLeft", Alias: "pl", Category: CategorySpace, Scale: "space"},
	{Name: "marginX", Alias: "mx", Category: CategorySpace, Scale: "space", CSSProps: []string{"margin-left", "margin-right"}},
	{Name: "marginY", Alias: "my", Category: CategorySpace, Scale: "space", CSSProps: []string{"margin-bottom", "margin-top"}},
	{Name: "paddingX", Alias: "px", Category: CategorySpace, Scale: "space", CSSProps: []string{"padding-left", "padding-right"}},
	{Name: "paddingY", Alias: "py", Category: CategorySpace, Scale: "space", CSSProps: []string{"padding-bottom", "padding-top"}},

	// typography
	{Name: "fontFamily", Category: CategoryTypography, Scale: "fonts", Transform: theme.TransformString},
	{Name: "fontSize", Category: CategoryTypography, Scale: "fontSizes"},
	{Name: "fontWeight", Category: CategoryTypography, Scale: "fontWeights", Transform: theme.TransformString},
	{Name: "letterSpacing", Category: CategoryTypography, Scale: "letterSpacings"},
	{Name: "lineHeight", Category: CategoryTypography, Scale: "lineHeights", Transform: theme.TransformString},
	{Name: "textAlign", Category: CategoryTypography, Values: []string{"center", "left", "right"}},
	{Name: "textTransform", Category: CategoryTypography, Values: []string{"capitalize", "uppercase", "lowercase", "none"}},
}
