package texmath

// symbolKind selects the MathML token element for a symbol.
type symbolKind int

const (
	kindIdent   symbolKind = iota // <mi>
	kindUpright                   // <mi mathvariant="normal">
	kindOp                        // <mo>
)

type symbol struct {
	text   string
	kind   symbolKind
	limits bool // scripts go above and below in display mode
}

var symbols = map[string]symbol{
	// Greek, lowercase
	`\alpha`:      {"α", kindIdent, false},
	`\beta`:       {"β", kindIdent, false},
	`\gamma`:      {"γ", kindIdent, false},
	`\delta`:      {"δ", kindIdent, false},
	`\epsilon`:    {"ϵ", kindIdent, false},
	`\varepsilon`: {"ε", kindIdent, false},
	`\zeta`:       {"ζ", kindIdent, false},
	`\eta`:        {"η", kindIdent, false},
	`\theta`:      {"θ", kindIdent, false},
	`\vartheta`:   {"ϑ", kindIdent, false},
	`\iota`:       {"ι", kindIdent, false},
	`\kappa`:      {"κ", kindIdent, false},
	`\lambda`:     {"λ", kindIdent, false},
	`\mu`:         {"μ", kindIdent, false},
	`\nu`:         {"ν", kindIdent, false},
	`\xi`:         {"ξ", kindIdent, false},
	`\omicron`:    {"ο", kindIdent, false},
	`\pi`:         {"π", kindIdent, false},
	`\varpi`:      {"ϖ", kindIdent, false},
	`\rho`:        {"ρ", kindIdent, false},
	`\varrho`:     {"ϱ", kindIdent, false},
	`\sigma`:      {"σ", kindIdent, false},
	`\varsigma`:   {"ς", kindIdent, false},
	`\tau`:        {"τ", kindIdent, false},
	`\upsilon`:    {"υ", kindIdent, false},
	`\phi`:        {"ϕ", kindIdent, false},
	`\varphi`:     {"φ", kindIdent, false},
	`\chi`:        {"χ", kindIdent, false},
	`\psi`:        {"ψ", kindIdent, false},
	`\omega`:      {"ω", kindIdent, false},

	// Greek, uppercase
	`\Gamma`:   {"Γ", kindUpright, false},
	`\Delta`:   {"Δ", kindUpright, false},
	`\Theta`:   {"Θ", kindUpright, false},
	`\Lambda`:  {"Λ", kindUpright, false},
	`\Xi`:      {"Ξ", kindUpright, false},
	`\Pi`:      {"Π", kindUpright, false},
	`\Sigma`:   {"Σ", kindUpright, false},
	`\Upsilon`: {"Υ", kindUpright, false},
	`\Phi`:     {"Φ", kindUpright, false},
	`\Psi`:     {"Ψ", kindUpright, false},
	`\Omega`:   {"Ω", kindUpright, false},

	// Ordinary symbols
	`\infty`:      {"∞", kindUpright, false},
	`\partial`:    {"∂", kindUpright, false},
	`\nabla`:      {"∇", kindUpright, false},
	`\ell`:        {"ℓ", kindIdent, false},
	`\hbar`:       {"ℏ", kindIdent, false},
	`\emptyset`:   {"∅", kindUpright, false},
	`\varnothing`: {"∅", kindUpright, false},
	`\aleph`:      {"ℵ", kindUpright, false},
	`\Re`:         {"ℜ", kindUpright, false},
	`\Im`:         {"ℑ", kindUpright, false},
	`\wp`:         {"℘", kindUpright, false},
	`\forall`:     {"∀", kindOp, false},
	`\exists`:     {"∃", kindOp, false},
	`\neg`:        {"¬", kindOp, false},
	`\lnot`:       {"¬", kindOp, false},
	`\prime`:      {"′", kindOp, false},
	`\top`:        {"⊤", kindUpright, false},
	`\bot`:        {"⊥", kindUpright, false},
	`\angle`:      {"∠", kindUpright, false},
	`\triangle`:   {"△", kindUpright, false},
	`\ldots`:      {"…", kindOp, false},
	`\dots`:       {"…", kindOp, false},
	`\cdots`:      {"⋯", kindOp, false},
	`\vdots`:      {"⋮", kindOp, false},
	`\ddots`:      {"⋱", kindOp, false},

	// Escaped characters
	`\{`: {"{", kindOp, false},
	`\}`: {"}", kindOp, false},
	`\|`: {"‖", kindOp, false},
	`\%`: {"%", kindUpright, false},
	`\$`: {"$", kindUpright, false},
	`\#`: {"#", kindUpright, false},
	`\&`: {"&", kindUpright, false},
	`\_`: {"_", kindUpright, false},

	// Binary operators
	`\pm`:        {"±", kindOp, false},
	`\mp`:        {"∓", kindOp, false},
	`\times`:     {"×", kindOp, false},
	`\div`:       {"÷", kindOp, false},
	`\cdot`:      {"⋅", kindOp, false},
	`\ast`:       {"∗", kindOp, false},
	`\star`:      {"⋆", kindOp, false},
	`\circ`:      {"∘", kindOp, false},
	`\bullet`:    {"∙", kindOp, false},
	`\oplus`:     {"⊕", kindOp, false},
	`\ominus`:    {"⊖", kindOp, false},
	`\otimes`:    {"⊗", kindOp, false},
	`\oslash`:    {"⊘", kindOp, false},
	`\odot`:      {"⊙", kindOp, false},
	`\cap`:       {"∩", kindOp, false},
	`\cup`:       {"∪", kindOp, false},
	`\wedge`:     {"∧", kindOp, false},
	`\land`:      {"∧", kindOp, false},
	`\vee`:       {"∨", kindOp, false},
	`\lor`:       {"∨", kindOp, false},
	`\setminus`:  {"∖", kindOp, false},
	`\backslash`: {"∖", kindOp, false},
	`\dagger`:    {"†", kindOp, false},
	`\ddagger`:   {"‡", kindOp, false},

	// Relations
	`\leq`:      {"≤", kindOp, false},
	`\le`:       {"≤", kindOp, false},
	`\geq`:      {"≥", kindOp, false},
	`\ge`:       {"≥", kindOp, false},
	`\neq`:      {"≠", kindOp, false},
	`\ne`:       {"≠", kindOp, false},
	`\equiv`:    {"≡", kindOp, false},
	`\approx`:   {"≈", kindOp, false},
	`\sim`:      {"∼", kindOp, false},
	`\simeq`:    {"≃", kindOp, false},
	`\cong`:     {"≅", kindOp, false},
	`\propto`:   {"∝", kindOp, false},
	`\ll`:       {"≪", kindOp, false},
	`\gg`:       {"≫", kindOp, false},
	`\subset`:   {"⊂", kindOp, false},
	`\supset`:   {"⊃", kindOp, false},
	`\subseteq`: {"⊆", kindOp, false},
	`\supseteq`: {"⊇", kindOp, false},
	`\in`:       {"∈", kindOp, false},
	`\notin`:    {"∉", kindOp, false},
	`\ni`:       {"∋", kindOp, false},
	`\perp`:     {"⊥", kindOp, false},
	`\parallel`: {"∥", kindOp, false},
	`\mid`:      {"∣", kindOp, false},
	`\models`:   {"⊨", kindOp, false},
	`\vdash`:    {"⊢", kindOp, false},
	`\prec`:     {"≺", kindOp, false},
	`\succ`:     {"≻", kindOp, false},
	`\preceq`:   {"⪯", kindOp, false},
	`\succeq`:   {"⪰", kindOp, false},
	`\doteq`:    {"≐", kindOp, false},
	`\colon`:    {":", kindOp, false},

	// Arrows
	`\to`:             {"→", kindOp, false},
	`\rightarrow`:     {"→", kindOp, false},
	`\leftarrow`:      {"←", kindOp, false},
	`\gets`:           {"←", kindOp, false},
	`\leftrightarrow`: {"↔", kindOp, false},
	`\Rightarrow`:     {"⇒", kindOp, false},
	`\Leftarrow`:      {"⇐", kindOp, false},
	`\Leftrightarrow`: {"⇔", kindOp, false},
	`\implies`:        {"⟹", kindOp, false},
	`\impliedby`:      {"⟸", kindOp, false},
	`\iff`:            {"⟺", kindOp, false},
	`\mapsto`:         {"↦", kindOp, false},
	`\longrightarrow`: {"⟶", kindOp, false},
	`\longleftarrow`:  {"⟵", kindOp, false},
	`\longmapsto`:     {"⟼", kindOp, false},
	`\uparrow`:        {"↑", kindOp, false},
	`\downarrow`:      {"↓", kindOp, false},
	`\hookrightarrow`: {"↪", kindOp, false},
	`\nearrow`:        {"↗", kindOp, false},
	`\searrow`:        {"↘", kindOp, false},

	// Large operators
	`\sum`:       {"∑", kindOp, true},
	`\prod`:      {"∏", kindOp, true},
	`\coprod`:    {"∐", kindOp, true},
	`\bigcup`:    {"⋃", kindOp, true},
	`\bigcap`:    {"⋂", kindOp, true},
	`\bigoplus`:  {"⨁", kindOp, true},
	`\bigotimes`: {"⨂", kindOp, true},
	`\bigvee`:    {"⋁", kindOp, true},
	`\bigwedge`:  {"⋀", kindOp, true},
	`\int`:       {"∫", kindOp, false},
	`\iint`:      {"∬", kindOp, false},
	`\iiint`:     {"∭", kindOp, false},
	`\oint`:      {"∮", kindOp, false},

	// Delimiters usable outside \left and \right
	`\langle`: {"⟨", kindOp, false},
	`\rangle`: {"⟩", kindOp, false},
	`\lfloor`: {"⌊", kindOp, false},
	`\rfloor`: {"⌋", kindOp, false},
	`\lceil`:  {"⌈", kindOp, false},
	`\rceil`:  {"⌉", kindOp, false},
	`\vert`:   {"|", kindOp, false},
	`\Vert`:   {"‖", kindOp, false},
	`\lvert`:  {"|", kindOp, false},
	`\rvert`:  {"|", kindOp, false},
	`\lVert`:  {"‖", kindOp, false},
	`\rVert`:  {"‖", kindOp, false},
}

// functions are upright multi-letter operator names.
var functions = map[string]symbol{
	`\sin`:    {"sin", kindIdent, false},
	`\cos`:    {"cos", kindIdent, false},
	`\tan`:    {"tan", kindIdent, false},
	`\cot`:    {"cot", kindIdent, false},
	`\sec`:    {"sec", kindIdent, false},
	`\csc`:    {"csc", kindIdent, false},
	`\arcsin`: {"arcsin", kindIdent, false},
	`\arccos`: {"arccos", kindIdent, false},
	`\arctan`: {"arctan", kindIdent, false},
	`\sinh`:   {"sinh", kindIdent, false},
	`\cosh`:   {"cosh", kindIdent, false},
	`\tanh`:   {"tanh", kindIdent, false},
	`\coth`:   {"coth", kindIdent, false},
	`\log`:    {"log", kindIdent, false},
	`\ln`:     {"ln", kindIdent, false},
	`\lg`:     {"lg", kindIdent, false},
	`\exp`:    {"exp", kindIdent, false},
	`\dim`:    {"dim", kindIdent, false},
	`\ker`:    {"ker", kindIdent, false},
	`\hom`:    {"hom", kindIdent, false},
	`\arg`:    {"arg", kindIdent, false},
	`\deg`:    {"deg", kindIdent, false},
	`\det`:    {"det", kindIdent, true},
	`\gcd`:    {"gcd", kindIdent, true},
	`\lim`:    {"lim", kindIdent, true},
	`\liminf`: {"lim inf", kindIdent, true},
	`\limsup`: {"lim sup", kindIdent, true},
	`\max`:    {"max", kindIdent, true},
	`\min`:    {"min", kindIdent, true},
	`\sup`:    {"sup", kindIdent, true},
	`\inf`:    {"inf", kindIdent, true},
	`\Pr`:     {"Pr", kindIdent, true},
}

// spaces maps spacing commands to an mspace width.
var spaces = map[string]string{
	`\,`:          "0.1667em",
	`\thinspace`:  "0.1667em",
	`\:`:          "0.2222em",
	`\>`:          "0.2222em",
	`\medspace`:   "0.2222em",
	`\;`:          "0.2778em",
	`\thickspace`: "0.2778em",
	`\!`:          "-0.1667em",
	`\enspace`:    "0.5em",
	`\quad`:       "1em",
	`\qquad`:      "2em",
}

type accent struct {
	mark  string
	under bool
}

var accents = map[string]accent{
	`\hat`:            {"^", false},
	`\widehat`:        {"^", false},
	`\check`:          {"ˇ", false},
	`\breve`:          {"˘", false},
	`\acute`:          {"´", false},
	`\grave`:          {"`", false},
	`\bar`:            {"¯", false},
	`\overline`:       {"‾", false},
	`\vec`:            {"→", false},
	`\overrightarrow`: {"→", false},
	`\overleftarrow`:  {"←", false},
	`\dot`:            {"˙", false},
	`\ddot`:           {"¨", false},
	`\tilde`:          {"~", false},
	`\widetilde`:      {"~", false},
	`\underline`:      {"‾", true},
}

// fonts maps font commands to a mathvariant.
var fonts = map[string]string{
	`\mathrm`:     "normal",
	`\mathbf`:     "bold",
	`\mathit`:     "italic",
	`\mathbb`:     "double-struck",
	`\mathcal`:    "script",
	`\mathfrak`:   "fraktur",
	`\mathsf`:     "sans-serif",
	`\mathtt`:     "monospace",
	`\boldsymbol`: "bold-italic",
}

// texts maps text commands to the mathvariant of the resulting mtext.
var texts = map[string]string{
	`\text`:       "",
	`\textrm`:     "",
	`\textnormal`: "",
	`\mbox`:       "",
	`\textbf`:     "bold",
	`\textit`:     "italic",
	`\texttt`:     "monospace",
}

// delimiters accepted after \left, \right and the \big family.
var delimiters = map[string]string{
	"(":          "(",
	")":          ")",
	"[":          "[",
	"]":          "]",
	"|":          "|",
	"/":          "/",
	"<":          "⟨",
	">":          "⟩",
	".":          "",
	`\{`:         "{",
	`\}`:         "}",
	`\|`:         "‖",
	`\langle`:    "⟨",
	`\rangle`:    "⟩",
	`\lfloor`:    "⌊",
	`\rfloor`:    "⌋",
	`\lceil`:     "⌈",
	`\rceil`:     "⌉",
	`\vert`:      "|",
	`\Vert`:      "‖",
	`\lvert`:     "|",
	`\rvert`:     "|",
	`\lVert`:     "‖",
	`\rVert`:     "‖",
	`\uparrow`:   "↑",
	`\downarrow`: "↓",
	`\backslash`: "∖",
}

// bigSizes maps the \big family to a fixed delimiter size.
var bigSizes = map[string]string{
	`\big`: "1.2em", `\bigl`: "1.2em", `\bigr`: "1.2em", `\bigm`: "1.2em",
	`\Big`: "1.8em", `\Bigl`: "1.8em", `\Bigr`: "1.8em", `\Bigm`: "1.8em",
	`\bigg`: "2.4em", `\biggl`: "2.4em", `\biggr`: "2.4em", `\biggm`: "2.4em",
	`\Bigg`: "3em", `\Biggl`: "3em", `\Biggr`: "3em", `\Biggm`: "3em",
}

type environment struct {
	open, close string
	columnAlign string
	display     bool
}

var environments = map[string]environment{
	"matrix":  {},
	"pmatrix": {open: "(", close: ")"},
	"bmatrix": {open: "[", close: "]"},
	"Bmatrix": {open: "{", close: "}"},
	"vmatrix": {open: "|", close: "|"},
	"Vmatrix": {open: "‖", close: "‖"},
	"cases":   {open: "{", columnAlign: "left left"},
	"aligned": {columnAlign: "right left", display: true},
}

// operatorChars are ASCII characters rendered as <mo>, with replacements
// for those that have a proper mathematical glyph.
var operatorChars = map[rune]string{
	'+': "+", '-': "−", '*': "∗", '/': "/", '=': "=", '<': "<", '>': ">",
	'(': "(", ')': ")", '[': "[", ']': "]", '|': "|", ',': ",", ';': ";",
	':': ":", '!': "!", '?': "?", '.': ".", '\'': "′", '@': "@",
}
