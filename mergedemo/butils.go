package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/rlaau/mergetrace/config"
	"github.com/rlaau/mergetrace/mergesort"
)

// generateRandomData 시드 고정 랜덤 데이터 (재현 가능)
func generateRandomData(size int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	data := make([]int, size)
	for i := range size {
		// 추적 출력이 읽기 쉽도록 작은 값
		data[i] = rng.Intn(100)
	}
	return data
}

// writeDataToFile 한 줄에 정수 하나
func writeDataToFile(data []int, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, num := range data {
		writer.WriteString(strconv.Itoa(num))
		writer.WriteByte('\n')
	}
	return writer.Flush()
}

// readDataFromFile 빈 줄은 건너뛴다
func readDataFromFile(filename string) ([]int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var data []int
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		num, err := strconv.Atoi(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", filename, line)
		}
		data = append(data, num)
	}

	return data, scanner.Err()
}

// parseValues "12, 11,13" 형태의 목록
func parseValues(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	data := make([]int, 0, len(fields))
	for _, f := range fields {
		num, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "value %q", f)
		}
		data = append(data, num)
	}
	return data, nil
}

// loadInput 설정에 따라 정렬할 배열을 준비
func loadInput(in config.InputConfig) ([]int, error) {
	switch {
	case in.File != "":
		data, err := readDataFromFile(in.File)
		return data, errors.Wrap(err, "read input file")
	case in.Random > 0:
		return generateRandomData(in.Random, in.Seed), nil
	}
	data := make([]int, len(in.Values))
	copy(data, in.Values)
	return data, nil
}

// saveEventsToJSON 기록된 이벤트 전체를 JSON 배열로
func saveEventsToJSON(w io.Writer, events []mergesort.Event[int]) error {
	if events == nil {
		// 추적이 없어도 null이 아닌 빈 배열
		events = []mergesort.Event[int]{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(events)
}

// saveEventsToMarkdown 단계별 표와 종류별 요약
func saveEventsToMarkdown(w io.Writer, input, sorted []int, events []mergesort.Event[int]) error {
	var builder strings.Builder

	builder.WriteString("# Merge sort trace\n\n")
	builder.WriteString(fmt.Sprintf("Original array: %v\n\n", input))
	builder.WriteString(fmt.Sprintf("Sorted array: %v\n\n", sorted))

	builder.WriteString("| step | depth | kind | detail |\n")
	builder.WriteString("|------|-------|------|--------|\n")
	counter := &mergesort.Counter[int]{}
	for i, e := range events {
		counter.Trace(e)
		detail := strings.ReplaceAll(e.String(), "|", "\\|")
		builder.WriteString(fmt.Sprintf("| %d | %d | %s | %s |\n", i, e.Depth, e.Kind, detail))
	}

	builder.WriteString("\n## Summary\n\n")
	builder.WriteString("| kind | count |\n")
	builder.WriteString("|------|-------|\n")
	for _, k := range mergesort.Kinds() {
		builder.WriteString(fmt.Sprintf("| %s | %d |\n", k, counter.Count(k)))
	}
	builder.WriteString(fmt.Sprintf("| total | %d |\n", counter.Total()))

	_, err := io.WriteString(w, builder.String())
	return err
}
