// Package corpusfile implements store.CorpusStore over a directory of corpus
// files. Partitions are addressed by file name ({domain}_L{level},
// {domain}_master, english_{category}) and may be written as JSON or YAML.
//
// A Store reads files on every load. While Watch is running it keeps decoded
// partitions in memory and drops them as soon as fsnotify reports a change.
package corpusfile
