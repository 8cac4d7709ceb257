package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ByLCY/admitcard/dsl"
	"github.com/ByLCY/admitcard/generator"
	"github.com/ByLCY/admitcard/layout"
	"github.com/ByLCY/admitcard/records"
	"github.com/ByLCY/admitcard/report"
)

func main() {
	job := flag.String("job", "", ".admit 作业文件路径，命令行参数优先于其中的配置")
	flag.String("records", "", "学生名单（.xlsx/.xlsm/.csv）")
	flag.String("sheet", "", "xlsx 工作表名称，默认第一个")
	flag.String("exam", "", "考试名称")
	flag.String("logo", "", "校徽图片路径")
	flag.String("institution", "", "学校名称")
	flag.String("out", "", "PDF 输出路径，默认系统临时目录下的 "+generator.DefaultFileName)
	backend := flag.String("backend", generator.BackendCanvas, "渲染后端：canvas 或 fpdf")
	flag.String("preview", "", "首页 PNG 预览输出路径")
	flag.String("debug", "", "布局调试 JSON 输出路径")
	plan := flag.Bool("plan", false, "打印每张卡片的页码与位置")
	dryRun := flag.Bool("dry-run", false, "只排版不写 PDF（通常与 -plan 一起使用）")
	verbose := flag.Bool("v", false, "输出生成过程日志")
	flag.Parse()

	// 作业文件提供默认值，显式给出的命令行参数覆盖它们。
	var settings dsl.Settings
	if *job != "" {
		s, err := dsl.Load(*job)
		if err != nil {
			log.Fatalf("读取作业文件失败: %v", err)
		}
		settings = s
	}
	overrides := map[string]*string{
		"records":     &settings.Records,
		"sheet":       &settings.Sheet,
		"exam":        &settings.Exam,
		"logo":        &settings.Logo,
		"institution": &settings.Institution,
		"out":         &settings.Output,
		"backend":     &settings.Backend,
		"preview":     &settings.Preview,
		"debug":       &settings.Debug,
	}
	flag.Visit(func(f *flag.Flag) {
		if dst, ok := overrides[f.Name]; ok {
			*dst = f.Value.String()
		}
	})
	if settings.Backend == "" {
		settings.Backend = *backend
	}

	opts := generator.Options{
		Output:      settings.Output,
		Backend:     settings.Backend,
		Institution: settings.Institution,
		Sheet:       settings.Sheet,
		Preview:     settings.Preview,
		Debug:       settings.Debug,
	}
	if *verbose {
		opts.Logger = log.New(os.Stderr, "admitcard: ", log.LstdFlags)
	}

	if err := run(settings, opts, *plan, *dryRun); err != nil {
		log.Fatalf("生成准考证失败: %v", err)
	}
}

// run 串联读取名单、排版、渲染与打印排版计划。
func run(s dsl.Settings, opts generator.Options, plan, dryRun bool) error {
	if !plan && !dryRun {
		path, err := generator.GenerateAdmitCards(s.Records, s.Exam, s.Logo, opts)
		if err != nil {
			return err
		}
		fmt.Printf("已生成准考证：%s\n", path)
		return nil
	}

	recs, err := loadRecords(s)
	if err != nil {
		return err
	}
	if dryRun {
		doc, err := generator.Layout(recs, s.Exam, s.Logo, opts)
		if err != nil {
			return err
		}
		return report.WritePlan(os.Stdout, doc)
	}

	res, err := generator.Generate(recs, s.Exam, s.Logo, opts)
	if err != nil {
		return err
	}
	if err := report.WritePlan(os.Stdout, res.Document); err != nil {
		return err
	}
	fmt.Printf("已生成准考证：%s\n", res.Path)
	return nil
}

func loadRecords(s dsl.Settings) ([]records.StudentRecord, error) {
	if s.Records == "" {
		return nil, &layout.MissingInputError{Field: "data file"}
	}
	recs, err := records.Load(s.Records, s.Sheet)
	if err != nil {
		return nil, fmt.Errorf("读取学生名单失败: %w", err)
	}
	return recs, nil
}
