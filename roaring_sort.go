package roaring

// find16 performs a blocked binary search for the target in a sorted array.
// Returns (index, found) where index is the insertion point if not found.
func find16(array []uint16, target uint16) (int, bool) {
	const blockSize = 32 // cache line size
	n := len(array)
	switch {
	case n == 0:
		return 0, false
	case target < array[0]:
		return 0, false
	case target > array[n-1]:
		return n, false
	case target == array[0]:
		return 0, true
	case target == array[n-1]:
		return n - 1, true
	case n <= 16:
		for i, key := range array {
			switch {
			case key == target:
				return i, true
			case key > target:
				return i, false
			}
		}
		return n, false
	default:
		// Binary search for the correct block
		numBlocks := (n + blockSize - 1) / blockSize
		left, right := 0, numBlocks-1
		for left <= right {
			mid := left + (right-left)>>1
			blockStart := mid * blockSize
			blockEnd := min(blockStart+blockSize, n)

			switch {
			case target < array[blockStart]:
				right = mid - 1
			case target > array[blockEnd-1]:
				left = mid + 1
			default:
				return searchBlock(array, blockStart, blockEnd, target)
			}
		}
		return left * blockSize, false
	}
}

// searchBlock performs a linear search within a single block, unrolled four
// keys at a time.
func searchBlock(keys []uint16, start, end int, target uint16) (int, bool) {
	i := start
	for ; i+4 <= end; i += 4 {
		if keys[i] >= target {
			return i, keys[i] == target
		}
		if keys[i+1] >= target {
			return i + 1, keys[i+1] == target
		}
		if keys[i+2] >= target {
			return i + 2, keys[i+2] == target
		}
		if keys[i+3] >= target {
			return i + 3, keys[i+3] == target
		}
	}
	for ; i < end; i++ {
		if keys[i] >= target {
			return i, keys[i] == target
		}
	}
	return end, false
}
