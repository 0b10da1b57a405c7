// Package fuzztests houses Go fuzz harnesses that exercise the wgslfuzz
// engine itself (source -> lexer -> passes -> text). Its goal is to smoke
// test robustness: the lexer must stay lossless and the pipeline must never
// panic on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через лексер и конвейер мутаций.
//
// Не делает: валидацию через naga, запись корпуса, выполнение CLI.
//
// Зависимости: internal/lexer, internal/pipeline, internal/preset, internal/rng.

package fuzztests
