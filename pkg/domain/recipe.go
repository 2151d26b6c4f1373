package domain

// SchemaVersion は本パッケージが受理する唯一のスキーマバージョンです。
// タグが一致しない文書は互換性の推測をせずに拒否します（新タグ＝新バリデータ）。
const SchemaVersion = "1.1.0"

// RecipeDocument は AI モデルの応答から復元・検証されたレシピ全体の構造です。
// RecoveryPipeline のみがこれを構築し、AssetResolver が imageShots の URL を
// 埋めた後は呼び出し側の所有物になります。
type RecipeDocument struct {
	SchemaVersion string       `json:"schemaVersion"`
	TitleZh       string       `json:"titleZh"`
	TitleEn       string       `json:"titleEn,omitempty"`
	Summary       Summary      `json:"summary"`
	Story         Story        `json:"story"`
	Ingredients   []Section    `json:"ingredients"`
	Steps         []Step       `json:"steps"`
	StyleGuide    StyleGuide   `json:"styleGuide"`
	ImageShots    []ImageShot  `json:"imageShots"`
}

// Summary は難易度・所要時間・人数などの概要情報を保持します。
type Summary struct {
	Difficulty    string  `json:"difficulty"` // easy / medium / hard
	TimeTotalMin  float64 `json:"timeTotalMin"`
	TimeActiveMin float64 `json:"timeActiveMin"`
	Servings      float64 `json:"servings"`
}

// Story はレシピに添える読み物（50〜500文字）とタグを保持します。
type Story struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Section は材料のひとまとまり（「主材料」「调味料」等）を表します。
type Section struct {
	Section string       `json:"section"`
	Items   []Ingredient `json:"items"`
}

// Ingredient は材料1品目です。Amount は常に正の数値で、文字量しか
// 取れなかった場合は Normalizer が Unit 側に退避させます。
type Ingredient struct {
	Name    string  `json:"name"`
	IconKey string  `json:"iconKey"`
	Amount  float64 `json:"amount"`
	Unit    string  `json:"unit"`
	Notes   string  `json:"notes,omitempty"`
}

// Step は調理手順の1ステップです。音声読み上げ用テキストや失敗ポイント、
// 撮影指示など、アプリ表示に必要な項目をすべて持ちます。
type Step struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Action     string  `json:"action"`
	SpeechText string  `json:"speechText"`
	VisualCue  string  `json:"visualCue"`
	FailPoint  string  `json:"failPoint"`
	PhotoBrief string  `json:"photoBrief"`
	TimerSec   float64 `json:"timerSec"`
}

// StyleGuide は画像生成に共通で適用する画風の4要素です。
type StyleGuide struct {
	Theme       string `json:"theme"`
	Lighting    string `json:"lighting"`
	Composition string `json:"composition"`
	Aesthetic   string `json:"aesthetic"`
}

// ImageShot は1枚の生成画像リクエストです。ImageURL は入力時には空で、
// AssetResolver が成功時に一度だけ書き込みます（失敗時は空のまま）。
type ImageShot struct {
	Key         string `json:"key"`
	ImagePrompt string `json:"imagePrompt"`
	Ratio       string `json:"ratio"` // 16:9 / 4:3 / 3:2
	ImageURL    string `json:"imageUrl,omitempty"`
}

// IconKeys は材料アイコン分類の閉じた列挙です。
var IconKeys = []string{
	"meat", "veg", "fruit", "seafood", "grain", "bean",
	"dairy", "egg", "spice", "sauce", "oil", "other",
}

// Ratios は画像ショットで許可されるアスペクト比の列挙です。
var Ratios = []string{"16:9", "4:3", "3:2"}

// Difficulties は概要の難易度として許可される値です。
var Difficulties = []string{"easy", "medium", "hard"}
