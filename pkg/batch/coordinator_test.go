package batch

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/kekohu426/meishi/pkg/asset"
	"github.com/kekohu426/meishi/pkg/domain"
)

// itemOK は名前をタイトルに写すだけの成功項目です。
func itemOK(_ context.Context, name string) (*domain.RecipeDocument, *asset.ResolutionReport, error) {
	return &domain.RecipeDocument{TitleZh: name}, asset.NewResolutionReport(), nil
}

func TestCoordinator_ContinuesOnFailure(t *testing.T) {
	names := []string{"红烧肉", "佛跳墙", "西红柿炒鸡蛋"}

	process := func(ctx context.Context, name string) (*domain.RecipeDocument, *asset.ResolutionReport, error) {
		if name == "佛跳墙" {
			return nil, nil, errors.New("生成に失敗しました")
		}
		return itemOK(ctx, name)
	}

	coordinator := NewCoordinator(process, 0, nil)
	report, err := coordinator.Run(context.Background(), names)
	if err != nil {
		t.Fatalf("項目の失敗でバッチは失敗しません: %v", err)
	}

	if report.Succeeded != 2 || report.Failed != 1 {
		t.Errorf("集計が一致しません: succeeded=%d failed=%d", report.Succeeded, report.Failed)
	}
	if len(report.Results) != 3 {
		t.Fatalf("結果は全件が入力順に残るはずです: %d", len(report.Results))
	}
	for i, name := range names {
		if report.Results[i].Name != name {
			t.Errorf("結果の順序が入力順と一致しません: %v", report.Results)
		}
	}
	if report.Results[1].Err == nil {
		t.Errorf("2件目は失敗として残るはずです")
	}
	if report.Results[0].Document.TitleZh != "红烧肉" {
		t.Errorf("成功項目の文書が残るはずです: %+v", report.Results[0])
	}
}

func TestCoordinator_ProgressCallback(t *testing.T) {
	names := []string{"红烧肉", "佛跳墙", "西红柿炒鸡蛋"}

	type call struct {
		current int
		total   int
		name    string
	}
	var calls []call
	onProgress := func(current, total int, name string) {
		calls = append(calls, call{current, total, name})
	}

	coordinator := NewCoordinator(itemOK, 0, onProgress)
	if _, err := coordinator.Run(context.Background(), names); err != nil {
		t.Fatalf("実行に失敗しました: %v", err)
	}

	want := []call{
		{1, 3, "红烧肉"},
		{2, 3, "佛跳墙"},
		{3, 3, "西红柿炒鸡蛋"},
	}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("進捗は1始まりで全件通知されるはずです:\ngot  %v\nwant %v", calls, want)
	}
}

func TestCoordinator_ProgressPanicTolerated(t *testing.T) {
	onProgress := func(current, total int, name string) {
		panic("進捗表示が壊れました")
	}

	coordinator := NewCoordinator(itemOK, 0, onProgress)
	report, err := coordinator.Run(context.Background(), []string{"红烧肉", "佛跳墙"})
	if err != nil {
		t.Fatalf("コールバックの panic でバッチは止まりません: %v", err)
	}
	if report.Succeeded != 2 {
		t.Errorf("全件成功するはずです: %+v", report)
	}
}

func TestCoordinator_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	processed := 0
	process := func(ctx context.Context, name string) (*domain.RecipeDocument, *asset.ResolutionReport, error) {
		processed++
		if processed == 1 {
			cancel()
		}
		return itemOK(ctx, name)
	}

	// 2件目の待機でキャンセルが検出されるよう、わずかな間隔を入れます。
	coordinator := NewCoordinator(process, 1, nil)
	report, err := coordinator.Run(ctx, []string{"红烧肉", "佛跳墙", "西红柿炒鸡蛋"})

	if err == nil {
		t.Fatalf("キャンセル時はエラーが返るはずです")
	}
	if processed != 1 {
		t.Errorf("キャンセル後の項目は処理されないはずです: processed=%d", processed)
	}
	if len(report.Results) != 1 {
		t.Errorf("蓄積済みの結果は返るはずです: %d", len(report.Results))
	}
}

func TestCoordinator_EmptyBatch(t *testing.T) {
	coordinator := NewCoordinator(itemOK, 0, nil)
	report, err := coordinator.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("空バッチはエラーになりません: %v", err)
	}
	if report.Succeeded != 0 || report.Failed != 0 || len(report.Results) != 0 {
		t.Errorf("空のレポートが返るはずです: %+v", report)
	}
}

func ExampleCoordinator_Run() {
	coordinator := NewCoordinator(itemOK, 0, func(current, total int, name string) {
		fmt.Printf("[%d/%d] %s\n", current, total, name)
	})
	report, _ := coordinator.Run(context.Background(), []string{"红烧肉", "佛跳墙"})
	fmt.Println("succeeded:", report.Succeeded)
	// Output:
	// [1/2] 红烧肉
	// [2/2] 佛跳墙
	// succeeded: 2
}
