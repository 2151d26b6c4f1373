package asset

// ResolutionReport は1文書分の画像解決の結果です。ショット単位の失敗は
// ここに記録されるだけで、呼び出し側へ例外的に伝播することはありません。
type ResolutionReport struct {
	// CoverImage は文書を代表する1枚のURLです。未選定なら空です。
	CoverImage string
	// CoverMissing は1枚も解決できずカバーが選べなかったことを示します。
	CoverMissing bool
	// Resolved は解決に成功したショットのキー（宣言順）です。
	Resolved []string
	// Failures はショットキーから失敗理由へのマップです。
	Failures map[string]string
}

// NewResolutionReport は空のレポートを返します。
func NewResolutionReport() *ResolutionReport {
	return &ResolutionReport{
		Failures: make(map[string]string),
	}
}

// Failed は指定キーのショットが失敗として記録されているか返します。
func (r *ResolutionReport) Failed(key string) bool {
	_, ok := r.Failures[key]
	return ok
}
