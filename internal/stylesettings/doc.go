// Package stylesettings applies user style settings to a theme.
//
// Themes describe their configurable options in comments of the form
//
//	/* @settings
//	id: minimal-style
//	settings:
//	  - id: accent-color
//	    type: variable-themed-color
//	    format: hsl-split
//	*/
//
// and the settings plugin stores the chosen values in a JSON object keyed by
// "category@@setting[@@light|dark]". The Parser extracts the schemas,
// ParseValues and LoadValues read the stored values for one theme variant,
// and the Synthesizer combines both into CSS custom properties and body
// classes.
package stylesettings
