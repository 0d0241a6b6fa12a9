package fib

// Fibonacci returns the n-th Fibonacci number using plain recursion.
// Anything below 1 gives 0.
func Fibonacci(n int) int {
	if n < 1 {
		return 0
	}
	if n == 1 {
		return 1
	}
	return Fibonacci(n-1) + Fibonacci(n-2)
}

// Calls returns how many times Fibonacci is invoked when computing Fibonacci(n),
// the outer call included.
func Calls(n int) int {
	if n <= 1 {
		return 1
	}
	// calls for n-2 and n-1
	prev, curr := 1, 1
	for i := 2; i <= n; i++ {
		prev, curr = curr, 1+curr+prev
	}
	return curr
}

// Sequence returns the first count terms, F(0) through F(count-1)
func Sequence(count int) []int {
	if count <= 0 {
		return []int{}
	}
	seq := make([]int, count)
	for i := range seq {
		seq[i] = Fibonacci(i)
	}
	return seq
}
