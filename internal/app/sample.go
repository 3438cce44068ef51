package app

// SampleSource is loaded when irscope starts without a file argument.
const SampleSource = `# A sample program

class Pair<T> {
    first: T,
    second: T,
}

class Counter {
    count: int32,
}

def next(self) for Counter -> int32 {
    return self.count + 1;
}

def main() -> int32 {
    let pair = Pair { first: 2.5, second: 4.0 };
    let counter = Counter { count: 41 };

    if counter.next() == 42 {
        return 0;
    }

    return 1;
}
`
